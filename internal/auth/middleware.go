package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

type contextKey string

const UserIDKey contextKey = "user_id"

func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}

// Middleware authenticates every operation that declares a security
// requirement. Public operations pass through untouched.
func (h *AuthHandler) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op == nil || len(op.Security) == 0 {
			next(ctx)
			return
		}

		// 1. API key header
		if key := ctx.Header("X-API-KEY"); key != "" {
			userID, err := h.authenticateAPIKey(ctx.Context(), key)
			if err == nil {
				next(huma.WithValue(ctx, UserIDKey, userID))
				return
			}
			if errors.Is(err, ErrAPIKeyExpired) {
				_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: API Key expired")
				return
			}
		}

		// 2. JWT cookie
		tokenString := tokenFromCookieHeader(ctx.Header("Cookie"))
		if tokenString == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: No token found")
			return
		}
		userID, expiresAt, err := h.parseToken(tokenString)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		// Sliding session: refresh once more than half the lifetime is used.
		if time.Until(expiresAt) < TokenDuration/2 {
			if newToken, err := h.GenerateToken(userID); err == nil {
				ctx.AppendHeader("Set-Cookie", h.newCookie(newToken).String())
			}
		}

		next(huma.WithValue(ctx, UserIDKey, userID))
	}
}
