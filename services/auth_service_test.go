package services

import (
	"context"
	"testing"
	"time"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/testutil"
	"bellezza-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Seed(t, db)
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(repository.NewUserRepository(db), tokens, utils.NewTestLogger())
	ctx := context.Background()

	t.Run("register creates user and client", func(t *testing.T) {
		user, err := svc.Register(ctx, RegisterInput{
			Username:  "maria",
			Email:     "Maria@Example.com",
			Password:  "long-enough",
			FirstName: "Maria",
			LastName:  "Ivanova",
			Phone:     "+7 (917) 000-00-02",
		})
		require.NoError(t, err)
		require.NotNil(t, user.Client)
		assert.Equal(t, "maria@example.com", user.Email)
		assert.Equal(t, "Maria Ivanova", user.Client.Name)
		assert.Equal(t, "+79170000002", user.Client.Phone)
		assert.Equal(t, user.ID, *user.Client.UserID)
	})

	t.Run("register rejects weak input", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Username: "x", Email: "x@example.com", Password: "short", Phone: "+79170000003"})
		assert.True(t, apperror.IsValidation(err))

		_, err = svc.Register(ctx, RegisterInput{Username: "x", Email: "x@example.com", Password: "long-enough", Phone: "call me"})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("register is atomic", func(t *testing.T) {
		// The phone belongs to the fixture client, so the profile insert fails.
		_, err := svc.Register(ctx, RegisterInput{
			Username: "ghost",
			Email:    "ghost@example.com",
			Password: "long-enough",
			Phone:    fx.Client.Phone,
		})
		assert.True(t, apperror.IsConflict(err))

		var count int64
		require.NoError(t, db.Model(&models.User{}).Where("username = ?", "ghost").Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("token", func(t *testing.T) {
		_, err := svc.Token(ctx, fx.ClientUser.Email, "wrong")
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

		_, err = svc.Token(ctx, "nobody@example.com", testutil.Password)
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

		resp, err := svc.Token(ctx, "ANNA@example.com", testutil.Password)
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.EqualValues(t, 3600, resp.ExpiresIn)

		p, err := tokens.Parse(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, fx.ClientUser.ID, p.UserID)
		assert.False(t, p.IsStaff)

		var user models.User
		require.NoError(t, db.First(&user, "id = ?", fx.ClientUser.ID).Error)
		assert.NotNil(t, user.LastLogin)
	})

	t.Run("inactive users cannot log in", func(t *testing.T) {
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", fx.Staff.ID).Update("is_active", false).Error)
		_, err := svc.Token(ctx, fx.Staff.Email, testutil.Password)
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("me", func(t *testing.T) {
		_, err := svc.Me(ctx, utils.Anonymous)
		assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

		user, err := svc.Me(ctx, utils.Principal{UserID: fx.ClientUser.ID, Authenticated: true})
		require.NoError(t, err)
		require.NotNil(t, user.Client)
		assert.Equal(t, fx.Client.ID, user.Client.ID)
	})
}
