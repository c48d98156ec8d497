package services

import (
	"context"
	"net/http"
	"strings"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/policy"
	"bellezza-backend/repository"
	"bellezza-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type ClientStore interface {
	List(ctx context.Context, f repository.ClientFilter, page repository.Page) ([]models.Client, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClientInput struct {
	Name      string
	Email     string
	Phone     string
	BirthDate *datatypes.Date
}

type ClientPatch struct {
	Name      *string
	Email     *string
	Phone     *string
	BirthDate *datatypes.Date
}

// ClientService manages client profiles. Staff see every client, everyone
// else only the profile linked to their account.
type ClientService struct {
	clients ClientStore
	log     logrus.FieldLogger
}

func NewClientService(clients ClientStore, log logrus.FieldLogger) *ClientService {
	return &ClientService{clients: clients, log: log}
}

func (s *ClientService) List(ctx context.Context, p utils.Principal, f repository.ClientFilter, page repository.Page) ([]models.Client, int64, error) {
	if !p.IsStaff {
		f.UserID = &p.UserID
	}
	return s.clients.List(ctx, f, page)
}

func (s *ClientService) Get(ctx context.Context, p utils.Principal, id uuid.UUID) (*models.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsStaff && (client.UserID == nil || *client.UserID != p.UserID) {
		return nil, apperror.ErrClientNotFound
	}
	return client, nil
}

// Mine returns the client profile of p.
func (s *ClientService) Mine(ctx context.Context, p utils.Principal) (*models.Client, error) {
	return s.clients.GetByUser(ctx, p.UserID)
}

// Create adds a client. Staff create unlinked clients; other principals
// create their own profile once.
func (s *ClientService) Create(ctx context.Context, p utils.Principal, in ClientInput) (*models.Client, error) {
	client := &models.Client{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}

	if !p.IsStaff {
		if _, err := s.clients.GetByUser(ctx, p.UserID); err == nil {
			return nil, apperror.Conflict("a client profile already exists for this account")
		} else if !apperror.IsValidation(err) {
			return nil, err
		}
		client.UserID = &p.UserID
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	s.log.WithField("client_id", client.ID).Info("client created")
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, p utils.Principal, id uuid.UUID, patch ClientPatch) (*models.Client, error) {
	client, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccess(p, client, http.MethodPatch) {
		return nil, apperror.ErrForbidden
	}

	if patch.Name != nil {
		client.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		client.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.BirthDate != nil {
		client.BirthDate = patch.BirthDate
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete removes a client with its appointments and reviews.
func (s *ClientService) Delete(ctx context.Context, p utils.Principal, id uuid.UUID) error {
	client, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}
	if !policy.CanAccess(p, client, http.MethodDelete) {
		return apperror.ErrForbidden
	}
	return s.clients.Delete(ctx, id)
}

func validateClient(c *models.Client) error {
	if c.Name == "" {
		return apperror.Validation("name is required")
	}
	if !utils.ValidateEmail(c.Email) {
		return apperror.Validation("invalid email address")
	}
	if !utils.ValidatePhone(c.Phone) {
		return apperror.Validation("invalid phone number format")
	}
	c.Phone = utils.NormalizePhone(c.Phone)
	return nil
}
