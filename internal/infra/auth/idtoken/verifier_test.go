package idtoken

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenInfoServer(t *testing.T, status int, payload map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("id_token"))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(payload)
	}))
}

func TestVerifyIDToken(t *testing.T) {
	srv := newTokenInfoServer(t, http.StatusOK, map[string]string{
		"aud":     "client-1",
		"sub":     "uid-1",
		"email":   "a@example.com",
		"name":    "A",
		"picture": "p.png",
	})
	defer srv.Close()

	v := NewVerifier(srv.URL, "client-1")
	info, err := v.VerifyIDToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", info.SubjectID)
	assert.Equal(t, "a@example.com", info.Email)
}

func TestVerifyIDTokenRejectsNonOK(t *testing.T) {
	srv := newTokenInfoServer(t, http.StatusBadRequest, map[string]string{})
	defer srv.Close()

	v := NewVerifier(srv.URL, "")
	_, err := v.VerifyIDToken(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestVerifyIDTokenAudienceMismatch(t *testing.T) {
	srv := newTokenInfoServer(t, http.StatusOK, map[string]string{
		"aud": "someone-else",
		"sub": "uid-1",
	})
	defer srv.Close()

	v := NewVerifier(srv.URL, "client-1")
	_, err := v.VerifyIDToken(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not issued for this application")
}

func TestVerifyIDTokenMissingSubject(t *testing.T) {
	srv := newTokenInfoServer(t, http.StatusOK, map[string]string{"aud": "client-1"})
	defer srv.Close()

	v := NewVerifier(srv.URL, "client-1")
	_, err := v.VerifyIDToken(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing subject")
}
