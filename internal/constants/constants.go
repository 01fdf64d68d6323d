package constants

type ContextKey string

const (
	AuthTokenHeaderKey = "x-auth-token"

	PrincipalKey ContextKey = "principal"
	RequestIDKey ContextKey = "request_id"
)
