package jwt

import (
	"context"
	"net/http"
	"strings"

	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/logx"
	"classroom/internal/pkg/resp"
)

type contextKey string

// ContextAuthPayloadKey stores the parsed *Payload in the request context.
const ContextAuthPayloadKey contextKey = "auth_payload"

// IdentityExtractorMiddleware parses a "Bearer <token>" Authorization header and, when valid,
// stores the Payload in the request context. Missing or invalid tokens leave the request anonymous.
func IdentityExtractorMiddleware(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, tokenString, found := strings.Cut(r.Header.Get("Authorization"), " ")
			if !found || scheme != "Bearer" || tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := ParseToken(tokenString, secretKey)
			if err != nil {
				logx.Warn("Invalid or expired JWT provided, treating as anonymous", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}

// RequireRole rejects anonymous requests with ErrUnauthorized and requests from
// other roles with ErrForbidden. With no roles given any authenticated holder passes.
func RequireRole(roles ...Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload := GetPayloadFromContext(r)
			if payload == nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			if len(roles) > 0 && !hasRole(payload.Role, roles) {
				logx.Warn("Request rejected: role not permitted.", "name", payload.Name, "role", string(payload.Role), "path", r.URL.Path)
				resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasRole(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

// WithPayload returns a copy of ctx carrying payload.
func WithPayload(ctx context.Context, payload *Payload) context.Context {
	return context.WithValue(ctx, ContextAuthPayloadKey, payload)
}

// GetPayloadFromContext returns the authenticated Payload, or nil for anonymous requests.
func GetPayloadFromContext(r *http.Request) *Payload {
	payload, ok := r.Context().Value(ContextAuthPayloadKey).(*Payload)
	if !ok {
		return nil
	}

	return payload
}
