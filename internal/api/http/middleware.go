package http

import (
	"context"
	"net/http"
	"strings"

	"elira-backend/internal/security"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware authenticates bearer tokens and injects the caller
// identity into the request context.
type AuthMiddleware struct {
	verifier security.TokenVerifier
}

func NewAuthMiddleware(verifier security.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			writeError(w, err)
			return
		}

		identity, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			writeError(w, status.Error(codes.Unauthenticated, "invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", status.Error(codes.Unauthenticated, "authorization token is not provided")
	}

	token := authHeader
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return token, nil
}

// GetIdentityFromContext extracts the authenticated caller placed in the
// context by AuthMiddleware.
func GetIdentityFromContext(ctx context.Context) (*security.Identity, error) {
	identity, ok := ctx.Value(identityKey).(*security.Identity)
	if !ok || identity == nil || identity.UserID == "" {
		return nil, status.Error(codes.Unauthenticated, "caller identity is not provided")
	}
	return identity, nil
}
