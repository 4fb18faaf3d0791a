package v1

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/marketplace-service/internal/core/domain"
	"github.com/duynhne/marketplace-service/middleware"
)

// AuthService implements registration and login.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database directly.
type AuthService struct {
	users     domain.UserRepository
	passwords PasswordStorage
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, passwords PasswordStorage) *AuthService {
	if passwords == nil {
		passwords = VerbatimPasswords{}
	}
	return &AuthService{
		users:     users,
		passwords: passwords,
	}
}

// Register creates a user unless the email is already taken. Emails differing
// only in the case of their domain are the same address.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.PublicUser, error) {
	req.Email = domain.NormalizeEmail(req.Email)

	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	if err := domain.NewValidationError(req.Validate()); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return nil, fmt.Errorf("validate register request: %w", err)
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", req.Email, err)
	}
	if existing != nil {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return nil, fmt.Errorf("register user %q: %w", req.Email, ErrDuplicateEmail)
	}

	sealed, err := s.passwords.Seal(req.PasswordHash)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	user := &domain.UserDocument{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: sealed,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			span.SetAttributes(attribute.Bool("registration.success", false))
			return nil, fmt.Errorf("register user %q: %w", req.Email, ErrDuplicateEmail)
		}
		span.RecordError(err)
		return nil, fmt.Errorf("insert user: %w", err)
	}
	user.ID = id

	span.SetAttributes(
		attribute.String("user.id", id.Hex()),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return domain.ToPublicUser(user), nil
}

// Login checks the supplied password hash against the stored one.
// Unknown email and wrong hash both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.PublicUser, error) {
	req.Email = domain.NormalizeEmail(req.Email)

	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	if err := domain.NewValidationError(req.Validate()); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return nil, fmt.Errorf("validate login request: %w", err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", req.Email, err)
	}
	if user == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate user %q: %w", req.Email, ErrInvalidCredentials)
	}

	ok, err := s.passwords.Matches(user.PasswordHash, req.PasswordHash)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("authenticate user %q: %w", req.Email, err)
	}
	if !ok {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate user %q: %w", req.Email, ErrInvalidCredentials)
	}

	span.SetAttributes(
		attribute.String("user.id", user.ID.Hex()),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return domain.ToPublicUser(user), nil
}
