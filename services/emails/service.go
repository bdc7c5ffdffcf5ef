package emails

import (
	"context"
	"errors"
	"strings"

	emailsRepo "cmueats/database/repository/emails"
	"cmueats/models"
	"cmueats/utils"

	"go.uber.org/zap"
)

// ErrAlreadySubscribed is returned when the email is already on the list.
var ErrAlreadySubscribed = errors.New("email already subscribed")

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
	maxNameLength    = 200
)

type EmailService interface {
	Subscribe(ctx context.Context, name, email string) (*models.EmailSignup, error)
	List(ctx context.Context, limit int) ([]models.EmailSignup, error)
}

type DefaultEmailService struct {
	Repo   emailsRepo.EmailRepository
	Logger *zap.Logger
}

func NewDefaultEmailService(repo emailsRepo.EmailRepository, logger *zap.Logger) *DefaultEmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEmailService{Repo: repo, Logger: logger}
}

func (s *DefaultEmailService) Subscribe(ctx context.Context, name, email string) (*models.EmailSignup, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, utils.NewValidationError("name", "is required")
	}
	if len(name) > maxNameLength {
		return nil, utils.NewValidationError("name", "is too long")
	}
	if !utils.IsValidEmail(email) {
		return nil, utils.NewValidationError("email", "must be a valid email address")
	}

	signup, err := s.Repo.Insert(ctx, name, email)
	if errors.Is(err, emailsRepo.ErrEmailExists) {
		return nil, ErrAlreadySubscribed
	}
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Email subscribed", zap.Int64("id", signup.ID))
	return signup, nil
}

// List returns the newest sign ups. limit is clamped to 1..MaxListLimit.
func (s *DefaultEmailService) List(ctx context.Context, limit int) ([]models.EmailSignup, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.Repo.List(ctx, limit)
}
