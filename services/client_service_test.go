package services

import (
	"context"
	"testing"

	"bellezza-backend/apperror"
	"bellezza-backend/repository"
	"bellezza-backend/testutil"
	"bellezza-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Seed(t, db)
	svc := NewClientService(repository.NewClientRepository(db), utils.NewTestLogger())
	ctx := context.Background()

	owner := utils.Principal{UserID: fx.ClientUser.ID, Authenticated: true}
	staff := utils.Principal{UserID: fx.Staff.ID, IsStaff: true, Authenticated: true}
	other, otherUser := testutil.NewClient(t, db, "maria", true)
	stranger := utils.Principal{UserID: otherUser.ID, Authenticated: true}

	t.Run("list is scoped to the caller", func(t *testing.T) {
		items, total, err := svc.List(ctx, owner, repository.ClientFilter{}, repository.Page{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, fx.Client.ID, items[0].ID)

		_, total, err = svc.List(ctx, staff, repository.ClientFilter{}, repository.Page{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("someone else's profile is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, stranger, fx.Client.ID)
		assert.True(t, apperror.IsNotFound(err))

		_, err = svc.Get(ctx, staff, fx.Client.ID)
		assert.NoError(t, err)
	})

	t.Run("create", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, ClientInput{Name: "Anna", Email: "anna2@example.com", Phone: "+79170000009"})
		assert.True(t, apperror.IsConflict(err))

		_, err = svc.Create(ctx, staff, ClientInput{Name: "Walk-in", Email: "not-an-email", Phone: "+79170000010"})
		assert.True(t, apperror.IsValidation(err))

		walkIn, err := svc.Create(ctx, staff, ClientInput{Name: "Walk-in", Email: "walkin@example.com", Phone: "8 917 000 00 11"})
		require.NoError(t, err)
		assert.Nil(t, walkIn.UserID)
		assert.Equal(t, "89170000011", walkIn.Phone)
	})

	t.Run("update", func(t *testing.T) {
		name := "Anna K."
		updated, err := svc.Update(ctx, owner, fx.Client.ID, ClientPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)

		_, err = svc.Update(ctx, stranger, fx.Client.ID, ClientPatch{Name: &name})
		assert.True(t, apperror.IsNotFound(err))

		taken := fx.Client.Email
		_, err = svc.Update(ctx, staff, other.ID, ClientPatch{Email: &taken})
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("mine and delete", func(t *testing.T) {
		mine, err := svc.Mine(ctx, stranger)
		require.NoError(t, err)
		assert.Equal(t, other.ID, mine.ID)

		require.NoError(t, svc.Delete(ctx, stranger, other.ID))
		_, err = svc.Mine(ctx, stranger)
		assert.ErrorIs(t, err, apperror.ErrNoClientProfile)
	})
}
