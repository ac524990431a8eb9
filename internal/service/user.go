package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/auth"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/event"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/repository"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// SignupInput holds the parameters for registering a new user.
type SignupInput struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninInput holds the parameters for user sign-in.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserService implements the business logic for accounts and authentication.
type UserService struct {
	repo       repository.UserRepository
	jwtManager *auth.JWTManager
	producer   *event.Producer
	logger     *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, jwtManager *auth.JWTManager, producer *event.Producer, logger *slog.Logger) *UserService {
	return &UserService{
		repo:       repo,
		jwtManager: jwtManager,
		producer:   producer,
		logger:     logger,
	}
}

// Signup creates a new user account with a hashed password.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if err := validateFullname(input.Fullname); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Fullname:     strings.TrimSpace(input.Fullname),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("user", "email", email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Signin authenticates a user and issues a signed token. Wrong email and
// wrong password produce the same message so the endpoint cannot be used to
// probe which addresses have accounts.
func (s *UserService) Signin(ctx context.Context, input SigninInput) (*domain.AuthPayload, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.jwtManager.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed in",
		slog.String("user_id", user.ID),
	)

	return &domain.AuthPayload{Token: token, Role: user.Role, UserID: user.ID}, nil
}

// LoggedInUser returns the account for a verified identity.
func (s *UserService) LoggedInUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("you must be logged in")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user", userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// ListUsers returns all user accounts, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateRole changes a user's role.
func (s *UserService) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if !domain.IsValidRole(role) {
		return nil, apperrors.InvalidInput("role must be customer or admin")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "user role updated",
		slog.String("user_id", id),
		slog.String("role", role),
	)

	return user, nil
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted",
		slog.String("user_id", id),
	)

	return nil
}

func validateFullname(fullname string) error {
	fullname = strings.TrimSpace(fullname)
	if fullname == "" {
		return apperrors.InvalidInput("fullname is required")
	}
	for _, ch := range fullname {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && !unicode.IsSpace(ch) {
			return apperrors.InvalidInput("fullname may only contain letters, digits and spaces")
		}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return apperrors.InvalidInput("password must contain at least one uppercase letter, one lowercase letter, one digit, and one special character")
	}

	return nil
}
