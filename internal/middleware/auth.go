package middleware

import (
	"net/http"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/utils"

	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (*auth.CustomClaims, error)
}

// Authenticate attaches the actor from a valid access token. Requests without
// a token pass through anonymous; an invalid token is rejected.
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parser.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Warn("rejected access token", zap.Error(err))
				utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			actor := claims.Actor()
			ctx := utils.SetActorContext(r.Context(), actor)
			ctx = logger.WithProfileID(ctx, actor.ProfileID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActor rejects anonymous requests.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetActorFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireKind admits only actors of the given profile kind.
func RequireKind(kind auth.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := utils.GetActorFromContext(r.Context())
			if !ok {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if actor.Kind != kind {
				utils.WriteJSONError(w, "forbidden for "+string(actor.Kind), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
