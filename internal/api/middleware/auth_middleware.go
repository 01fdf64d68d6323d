package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/infra/auth/idtoken"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/api"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/er"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/rs/zerolog"
)

// AuthMiddleware 驗證x-auth-token並解析出Principal
// 第一次見到的uid會順便建shadow profile, blocked user直接擋在這層
func AuthMiddleware(verifier idtoken.IAuthVerifier, userService service.IUserService, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(constants.AuthTokenHeaderKey)
			if token == "" {
				api.ErrorJSON(w, er.New(er.UnauthenticatedCode, "No token provided. Authorization denied."))
				return
			}

			info, err := verifier.VerifyIDToken(r.Context(), token)
			if err != nil {
				api.ErrorJSON(w, er.New(er.UnauthenticatedCode, "Invalid token. Authorization denied."))
				return
			}

			user, created, err := userService.SyncFromIdentity(r.Context(), info)
			if err != nil {
				api.ErrorJSON(w, err)
				return
			}
			if created && logger != nil {
				logger.Warn().
					Str("uid", user.UID).
					Str("email", user.Email).
					Msg("created shadow profile on first sight")
			}

			if user.Status == model.UserStatusBlocked {
				api.ErrorJSON(w, er.New(er.ForbiddenCode, "Your account has been blocked. Please contact support."))
				return
			}

			principal := model.Principal{
				ID:       user.UID,
				Email:    user.Email,
				Name:     user.Name,
				PhotoURL: user.PhotoURL,
				Role:     user.Role,
			}
			ctx := context.WithValue(r.Context(), constants.PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware 要掛在AuthMiddleware之後
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			api.ErrorJSON(w, er.New(er.UnauthenticatedCode, "No token provided. Authorization denied."))
			return
		}
		if !principal.IsAdmin() {
			api.ErrorJSON(w, er.New(er.ForbiddenCode, "Access denied. Admin privileges required."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(constants.PrincipalKey).(model.Principal)
	return principal, ok
}
