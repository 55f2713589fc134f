package httpadapter

import (
	"context"
	"net/http"
	"strings"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

// TokenVerifier validates a bearer token against the identity provider and
// returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (domain.IdentityClaims, error)
}

type userContextKey struct{}

func userFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey{}).(*domain.User)
	return user
}

// authenticated verifies the bearer token and resolves the caller's durable
// user record before invoking the handler. Every authenticated request is a
// create-or-update point for the user row.
func (rt *Router) authenticated(handler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "unauthenticated", "missing or malformed bearer token")
			return
		}

		claims, err := rt.verifier.Verify(r.Context(), token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		user, err := rt.identity.ResolveUser(r.Context(), claims)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		handler.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}
	return token, true
}
