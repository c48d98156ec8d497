package services

import (
	"context"
	"net/http"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/policy"
	"bellezza-backend/repository"
	"bellezza-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MinRating       = 1
	MaxRating       = 5
	HighRatingFloor = 4
)

type ReviewStore interface {
	Create(ctx context.Context, r *models.Review) error
	Get(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Exists(ctx context.Context, appointmentID, clientID uuid.UUID) (bool, error)
	List(ctx context.Context, f repository.ReviewFilter, page repository.Page) ([]models.Review, int64, error)
	Update(ctx context.Context, r *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AppointmentReader is the read side of the appointment store.
type AppointmentReader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
}

type ReviewInput struct {
	AppointmentID uuid.UUID
	Rating        int
	Comment       string
}

type ReviewPatch struct {
	Rating  *int
	Comment *string
}

// ReviewService lets clients review their own completed appointments.
type ReviewService struct {
	reviews      ReviewStore
	appointments AppointmentReader
	clients      ClientDirectory
	log          logrus.FieldLogger
}

func NewReviewService(reviews ReviewStore, appointments AppointmentReader, clients ClientDirectory, log logrus.FieldLogger) *ReviewService {
	return &ReviewService{reviews: reviews, appointments: appointments, clients: clients, log: log}
}

// Create stores a review from p's client for one of its completed appointments.
// Staff accounts never author reviews.
func (s *ReviewService) Create(ctx context.Context, p utils.Principal, in ReviewInput) (*models.Review, error) {
	if !p.Authenticated {
		return nil, apperror.Unauthenticated("authentication required")
	}
	if p.IsStaff {
		return nil, apperror.Forbidden("staff accounts cannot leave reviews")
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	client, err := s.clients.GetByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	appointment, err := s.appointments.Get(ctx, in.AppointmentID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Validation("unknown appointment")
		}
		return nil, err
	}

	if appointment.ClientID != client.ID {
		return nil, apperror.Forbidden("you can only review your own appointments")
	}
	if appointment.Status != models.StatusCompleted {
		return nil, apperror.State("only a completed appointment can be reviewed")
	}
	exists, err := s.reviews.Exists(ctx, appointment.ID, client.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("review for this appointment already exists")
	}

	review := &models.Review{
		AppointmentID: &appointment.ID,
		ClientID:      &client.ID,
		Rating:        in.Rating,
		Comment:       in.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	review.Client = client

	s.log.WithFields(logrus.Fields{
		"review_id":      review.ID,
		"appointment_id": appointment.ID,
		"rating":         review.Rating,
	}).Info("review created")
	return review, nil
}

// Edit changes rating or comment. Only the reviewing client may edit.
func (s *ReviewService) Edit(ctx context.Context, p utils.Principal, id uuid.UUID, patch ReviewPatch) (*models.Review, error) {
	review, err := s.reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := review.ClientUser()
	if !p.Authenticated || owner == nil || *owner != p.UserID {
		return nil, apperror.Forbidden("only the author can edit a review")
	}

	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return nil, err
		}
		review.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		review.Comment = *patch.Comment
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, p utils.Principal, id uuid.UUID) error {
	review, err := s.reviews.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanAccess(p, review, http.MethodDelete) {
		return apperror.ErrForbidden
	}
	return s.reviews.Delete(ctx, id)
}

func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return s.reviews.Get(ctx, id)
}

func (s *ReviewService) List(ctx context.Context, f repository.ReviewFilter, page repository.Page) ([]models.Review, int64, error) {
	return s.reviews.List(ctx, f, page)
}

// HighRated lists reviews rated 4 and above.
func (s *ReviewService) HighRated(ctx context.Context, page repository.Page) ([]models.Review, int64, error) {
	return s.reviews.List(ctx, repository.ReviewFilter{MinRating: HighRatingFloor}, page)
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return apperror.Validation("rating must be between 1 and 5")
	}
	return nil
}
