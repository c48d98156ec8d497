package services

import (
	"context"
	"testing"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	svc          *ReviewService
	reviews      *mockReviewStore
	appointments *mockAppointmentStore
	clients      *mockClientDirectory
	owner        utils.Principal
	client       *models.Client
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	userID := uuid.New()
	f := &reviewFixture{
		reviews:      &mockReviewStore{},
		appointments: &mockAppointmentStore{},
		clients:      &mockClientDirectory{},
		owner:        utils.Principal{UserID: userID, Authenticated: true},
		client:       &models.Client{ID: uuid.New(), UserID: &userID, Name: "Anna"},
	}
	f.svc = NewReviewService(f.reviews, f.appointments, f.clients, utils.NewTestLogger())
	t.Cleanup(func() {
		f.reviews.AssertExpectations(t)
		f.appointments.AssertExpectations(t)
		f.clients.AssertExpectations(t)
	})
	return f
}

func (f *reviewFixture) appointment(status models.AppointmentStatus, clientID uuid.UUID) *models.Appointment {
	a := &models.Appointment{ID: uuid.New(), ClientID: clientID, Status: status}
	f.appointments.On("Get", mock.Anything, a.ID).Return(a, nil)
	return a
}

func TestReviewCreate_CompletedOwnAppointment(t *testing.T) {
	f := newReviewFixture(t)
	a := f.appointment(models.StatusCompleted, f.client.ID)

	f.clients.On("GetByUser", mock.Anything, f.owner.UserID).Return(f.client, nil)
	f.reviews.On("Exists", mock.Anything, a.ID, f.client.ID).Return(false, nil)
	f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.Rating == 5 && *r.ClientID == f.client.ID && *r.AppointmentID == a.ID
	})).Return(nil)

	review, err := f.svc.Create(context.Background(), f.owner, ReviewInput{AppointmentID: a.ID, Rating: 5, Comment: "Great"})
	require.NoError(t, err)
	assert.Equal(t, "Great", review.Comment)
}

func TestReviewCreate_Gate(t *testing.T) {
	t.Run("not completed", func(t *testing.T) {
		for _, status := range []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed, models.StatusCanceled} {
			f := newReviewFixture(t)
			a := f.appointment(status, f.client.ID)
			f.clients.On("GetByUser", mock.Anything, f.owner.UserID).Return(f.client, nil)

			_, err := f.svc.Create(context.Background(), f.owner, ReviewInput{AppointmentID: a.ID, Rating: 4})
			assert.True(t, apperror.IsState(err), "status %s: got %v", status, err)
		}
	})

	t.Run("someone else's appointment", func(t *testing.T) {
		f := newReviewFixture(t)
		a := f.appointment(models.StatusCompleted, uuid.New())
		f.clients.On("GetByUser", mock.Anything, f.owner.UserID).Return(f.client, nil)

		_, err := f.svc.Create(context.Background(), f.owner, ReviewInput{AppointmentID: a.ID, Rating: 4})
		assert.True(t, apperror.IsForbidden(err))
	})

	t.Run("second review", func(t *testing.T) {
		f := newReviewFixture(t)
		a := f.appointment(models.StatusCompleted, f.client.ID)
		f.clients.On("GetByUser", mock.Anything, f.owner.UserID).Return(f.client, nil)
		f.reviews.On("Exists", mock.Anything, a.ID, f.client.ID).Return(true, nil)

		_, err := f.svc.Create(context.Background(), f.owner, ReviewInput{AppointmentID: a.ID, Rating: 4})
		assert.True(t, apperror.IsConflict(err))
		f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			f := newReviewFixture(t)
			_, err := f.svc.Create(context.Background(), f.owner, ReviewInput{AppointmentID: uuid.New(), Rating: rating})
			assert.True(t, apperror.IsValidation(err))
		}
	})

	t.Run("staff never review", func(t *testing.T) {
		f := newReviewFixture(t)
		staff := utils.Principal{UserID: uuid.New(), IsStaff: true, Authenticated: true}
		_, err := f.svc.Create(context.Background(), staff, ReviewInput{AppointmentID: uuid.New(), Rating: 5})
		assert.True(t, apperror.IsForbidden(err))
	})
}

func TestReviewEdit_OwnerOnly(t *testing.T) {
	f := newReviewFixture(t)
	review := &models.Review{ID: uuid.New(), ClientID: &f.client.ID, Client: f.client, Rating: 3}
	f.reviews.On("Get", mock.Anything, review.ID).Return(review, nil)

	staff := utils.Principal{UserID: uuid.New(), IsStaff: true, Authenticated: true}
	rating := 4
	_, err := f.svc.Edit(context.Background(), staff, review.ID, ReviewPatch{Rating: &rating})
	assert.True(t, apperror.IsForbidden(err))

	bad := 9
	_, err = f.svc.Edit(context.Background(), f.owner, review.ID, ReviewPatch{Rating: &bad})
	assert.True(t, apperror.IsValidation(err))

	f.reviews.On("Update", mock.Anything, review).Return(nil)
	got, err := f.svc.Edit(context.Background(), f.owner, review.ID, ReviewPatch{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, f.client.ID, *got.ClientID)
}

func TestReviewDelete(t *testing.T) {
	f := newReviewFixture(t)
	review := &models.Review{ID: uuid.New(), ClientID: &f.client.ID, Client: f.client, Rating: 3}
	f.reviews.On("Get", mock.Anything, review.ID).Return(review, nil)

	stranger := utils.Principal{UserID: uuid.New(), Authenticated: true}
	assert.True(t, apperror.IsForbidden(f.svc.Delete(context.Background(), stranger, review.ID)))

	f.reviews.On("Delete", mock.Anything, review.ID).Return(nil)
	assert.NoError(t, f.svc.Delete(context.Background(), f.owner, review.ID))
}

func TestReviewHighRated(t *testing.T) {
	f := newReviewFixture(t)
	f.reviews.On("List", mock.Anything, repository.ReviewFilter{MinRating: 4}, repository.Page{}).
		Return([]models.Review{{Rating: 5}, {Rating: 4}}, 2, nil)

	items, total, err := f.svc.HighRated(context.Background(), repository.Page{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 2, total)
}
