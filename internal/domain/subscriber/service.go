// internal/domain/subscriber/service.go
package subscriber

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/apperror"
	"github.com/your-org/storefront-backend/internal/pkg/validation"
)

// Repository persists subscribers
type Repository interface {
	Create(ctx context.Context, s *Subscriber) error
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
}

// Mailer sends the welcome message
type Mailer interface {
	SendSubscriptionWelcome(ctx context.Context, to string) error
}

// Service handles newsletter subscriptions
type Service struct {
	repo   Repository
	mailer Mailer
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new subscriber service. mailer may be nil.
func NewService(repo Repository, mailer Mailer, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SubscribeRequest represents a newsletter signup
type SubscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe records a new subscriber
func (s *Service) Subscribe(ctx context.Context, req *SubscribeRequest) (*Subscriber, error) {
	address := strings.ToLower(strings.TrimSpace(req.Email))
	if address == "" {
		return nil, apperror.Validation("email is required")
	}
	if !validation.Email(address) {
		return nil, apperror.Validation("invalid email format")
	}

	if _, err := s.repo.FindByEmail(ctx, address); err == nil {
		return nil, apperror.Conflict("email is already subscribed")
	} else if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check subscriber: %w", err)
	}

	sub := &Subscriber{ID: uuid.New(), Email: address, SubscribedAt: s.now()}
	if err := s.repo.Create(ctx, sub); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("email is already subscribed")
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendSubscriptionWelcome(ctx, address); err != nil {
			s.logger.WithError(err).WithField("email", address).Warn("failed to send subscription welcome")
		}
	}
	return sub, nil
}
