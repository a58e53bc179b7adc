package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hasilakhwa/secure-locker-api/internal/common"
	"github.com/hasilakhwa/secure-locker-api/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// requireUser is the access guard for secret operations: it resolves the
// bearer token to a user and stores the identity in the request context.
// Every authentication failure (missing header, bad signature, expired
// token, deleted subject) surfaces as the same 401 so callers cannot probe
// for accounts; a failing user store surfaces as 500 instead.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		user, err := s.users.ResolveToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				s.respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			// A broken user store is not the caller's fault; do not
			// report it as a bad token.
			s.logger.Error(r.Context(), "token resolution failed", "error", err.Error())
			s.respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the identity stored by requireUser.
func currentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
