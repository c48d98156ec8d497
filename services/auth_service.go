package services

import (
	"context"
	"strings"
	"time"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const minPasswordLength = 8

type UserStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Register(ctx context.Context, u *models.User, c *models.Client) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	BirthDate *datatypes.Date
}

type TokenResponse struct {
	AccessToken string `json:"access"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthService registers accounts and issues access tokens.
type AuthService struct {
	users  UserStore
	tokens *utils.TokenManager
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens *utils.TokenManager, log logrus.FieldLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log, now: time.Now}
}

// Register creates a user and its client profile atomically.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Username == "" {
		return nil, apperror.Validation("username is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperror.Validation("password must be at least 8 characters")
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		IsActive:  true,
	}
	client := &models.Client{
		Name:      user.FullName(),
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}

	if err := s.users.Register(ctx, user, client); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"client_id": client.ID,
	}).Info("user registered")
	return user, nil
}

// Token authenticates by email and password.
func (s *AuthService) Token(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.IsStaff)
	if err != nil {
		return nil, apperror.Internal(err, "could not issue token")
	}
	if err := s.users.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// Me returns the authenticated user with its client profile.
func (s *AuthService) Me(ctx context.Context, p utils.Principal) (*models.User, error) {
	if !p.Authenticated {
		return nil, apperror.Unauthenticated("authentication required")
	}
	return s.users.Get(ctx, p.UserID)
}
