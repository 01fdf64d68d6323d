package api

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func SuccessJSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func CreatedJSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, data)
}

func ErrorJSON(w http.ResponseWriter, err error) {
	appErr := er.FromError(err)
	msg := appErr.Message
	if msg == "" {
		msg = er.ErrStrMap[appErr.Code]
	}
	writeJSON(w, int(appErr.Code), ErrorResponse{Message: msg})
}
