package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/event"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/repository"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
)

// ContactInput holds the parameters for a contact form submission. CreatedBy
// carries the authenticated user id when one is present.
type ContactInput struct {
	FullName  string `json:"full_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Subject   string `json:"subject" validate:"required"`
	Message   string `json:"message" validate:"required"`
	CreatedBy string `json:"created_by"`
}

// ContactService implements the business logic for contact form submissions.
type ContactService struct {
	repo     repository.ContactMessageRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(repo repository.ContactMessageRepository, producer *event.Producer, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Submit records a contact form submission.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.ContactMessage, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, apperrors.InvalidInput("full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, apperrors.InvalidInput("subject is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.InvalidInput("message is required")
	}

	msg := &domain.ContactMessage{
		ID:        uuid.New().String(),
		FullName:  input.FullName,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedBy: input.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	if err := s.producer.PublishContactReceived(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.received event",
			slog.String("message_id", msg.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "contact message received",
		slog.String("message_id", msg.ID),
	)

	return msg, nil
}

// GetMessage retrieves a contact message by ID.
func (s *ContactService) GetMessage(ctx context.Context, id string) (*domain.ContactMessage, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("message id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// ListMessages returns all contact messages, newest first.
func (s *ContactService) ListMessages(ctx context.Context) ([]*domain.ContactMessage, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}

// DeleteMessage removes a contact message.
func (s *ContactService) DeleteMessage(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("message id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	s.logger.InfoContext(ctx, "contact message deleted",
		slog.String("message_id", id),
	)

	return nil
}
