package auth

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-tickets/internal/config"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/gdg-garage/event-tickets/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMe(t *testing.T) {
	db := testutil.NewDB(t)

	user := models.AdminUser{
		DiscordID: "123456",
		Username:  "testuser",
		Email:     "test@example.com",
		Avatar:    "avatar_url",
	}
	require.NoError(t, db.Create(&user).Error)

	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db, nil)

	t.Run("Authenticated", func(t *testing.T) {
		token, err := handler.GenerateToken(user.ID)
		require.NoError(t, err)

		resp, err := handler.HandleMe(context.Background(), &AuthInput{
			Cookie: "theme=dark; auth_token=" + token,
		})
		require.NoError(t, err)
		assert.Equal(t, user.Username, resp.Body.Username)
		assert.Equal(t, user.Email, resp.Body.Email)
	})

	t.Run("FromMiddlewareContext", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, user.ID)
		resp, err := handler.HandleMe(ctx, &AuthInput{})
		require.NoError(t, err)
		assert.Equal(t, user.DiscordID, resp.Body.DiscordID)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := handler.HandleMe(context.Background(), &AuthInput{})
		require.Error(t, err)

		var statusErr huma.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 401, statusErr.GetStatus())
	})
}

func TestAuthorize_APIKey(t *testing.T) {
	db := testutil.NewDB(t)
	handler := NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db, nil)

	require.NoError(t, db.Create(&models.APIKey{AdminUserID: 7, Key: "k1"}).Error)

	userID, err := handler.Authorize(context.Background(), AuthInput{APIKey: "k1"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	_, err = handler.Authorize(context.Background(), AuthInput{APIKey: "nope"})
	assert.Error(t, err)
}
