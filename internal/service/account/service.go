package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"alumnimart/internal/domain"
	tokenrepo "alumnimart/internal/repository/token"
	userrepo "alumnimart/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles signup/login/session flows.
type Service struct {
	users       userrepo.Repository
	schools     schoolRepo
	tokens      *tokenManager
	accessTTL   time.Duration
	passwordMin int
}

type schoolRepo interface {
	GetByID(ctx context.Context, id string) (*domain.School, error)
}

// New creates a Service with sane defaults.
func New(users userrepo.Repository, schools schoolRepo, tokens tokenrepo.Repository) *Service {
	return &Service{
		users:       users,
		schools:     schools,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint. New accounts
// are always members; admin roles are granted out of band.
type SignupInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	SchoolID *string `json:"schoolId"`
}

// Signup registers a new member account.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("name is required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, domain.Validationf("password must be at least %d characters", s.passwordMin)
	}
	if in.SchoolID != nil {
		if _, err := s.schools.GetByID(ctx, *in.SchoolID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Validationf("school not found")
			}
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, domain.User{
		SchoolID:     in.SchoolID,
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Role:         domain.RoleMember,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Validationf("an account with this email already exists")
		}
		return nil, err
	}
	return created, nil
}

// Login checks credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// Logout revokes the given token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Authenticate resolves a bearer token to the owning user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(email))
	if trimmed == "" {
		return "", domain.Validationf("email is required")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", domain.Validationf("email is not valid")
	}
	return trimmed, nil
}
