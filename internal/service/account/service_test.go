package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"alumnimart/internal/domain"
	tokenrepo "alumnimart/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	r.nextID++
	u.ID = string(rune('a' + r.nextID))
	r.byEmail[u.Email] = &u
	r.byID[u.ID] = &u
	return &u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (r *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := r.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	r.tokens[t.Token] = t
	return nil
}

func (r *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	if t, ok := r.tokens[token]; ok {
		return &t, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

type stubSchoolRepo struct {
	known map[string]bool
}

func (r *stubSchoolRepo) GetByID(_ context.Context, id string) (*domain.School, error) {
	if r.known[id] {
		return &domain.School{ID: id}, nil
	}
	return nil, domain.ErrNotFound
}

func newTestService(users *memUserRepo, tokens *memTokenRepo, schools *stubSchoolRepo) *Service {
	if schools == nil {
		schools = &stubSchoolRepo{}
	}
	return New(users, schools, tokens)
}

func TestSignupValidation(t *testing.T) {
	svc := newTestService(newMemUserRepo(), newMemTokenRepo(), nil)
	cases := []struct {
		name string
		in   SignupInput
	}{
		{"missing email", SignupInput{Password: "longenough", Name: "Ada"}},
		{"bad email", SignupInput{Email: "nope", Password: "longenough", Name: "Ada"}},
		{"missing name", SignupInput{Email: "a@b.test", Password: "longenough"}},
		{"short password", SignupInput{Email: "a@b.test", Password: "short", Name: "Ada"}},
	}
	for _, tc := range cases {
		if _, err := svc.Signup(context.Background(), tc.in); !domain.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestSignupUnknownSchool(t *testing.T) {
	svc := newTestService(newMemUserRepo(), newMemTokenRepo(), &stubSchoolRepo{})
	schoolID := "nope"
	_, err := svc.Signup(context.Background(), SignupInput{
		Email: "a@b.test", Password: "longenough", Name: "Ada", SchoolID: &schoolID,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignupNormalizesAndHashes(t *testing.T) {
	users := newMemUserRepo()
	schoolID := "s1"
	svc := newTestService(users, newMemTokenRepo(), &stubSchoolRepo{known: map[string]bool{"s1": true}})

	u, err := svc.Signup(context.Background(), SignupInput{
		Email: "  Ada@Example.Test ", Password: "longenough", Name: " Ada Obi ", SchoolID: &schoolID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "ada@example.test" {
		t.Fatalf("email = %q", u.Email)
	}
	if u.Name != "Ada Obi" {
		t.Fatalf("name = %q", u.Name)
	}
	if u.Role != domain.RoleMember {
		t.Fatalf("role = %q, want member", u.Role)
	}
	if u.PasswordHash == "longenough" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("longenough")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(newMemUserRepo(), newMemTokenRepo(), nil)
	in := SignupInput{Email: "a@b.test", Password: "longenough", Name: "Ada"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error on duplicate, got %v", err)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	users := newMemUserRepo()
	svc := newTestService(users, newMemTokenRepo(), nil)
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.test", Password: "longenough", Name: "Ada"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "a@b.test", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@b.test", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}

	token, u, err := svc.Login(context.Background(), " A@B.Test ", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	got, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated as %q, want %q", got.ID, u.ID)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService(newMemUserRepo(), newMemTokenRepo(), nil)
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.test", Password: "longenough", Name: "Ada"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "a@b.test", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	svc := newTestService(users, tokens, nil)
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.test", Password: "longenough", Name: "Ada"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "a@b.test", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	stored := tokens.tokens[token]
	stored.ExpiresAt = time.Now().Add(-time.Minute)
	tokens.tokens[token] = stored

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc := newTestService(newMemUserRepo(), newMemTokenRepo(), nil)
	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
