package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	seq     int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[u.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("usr_%d", r.seq)
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, name, phone, address string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name, u.Phone, u.Address = name, phone, address
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) AppendDocuments(_ context.Context, id string, docs []domain.Document) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Documents = append(u.Documents, docs...)
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserListFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.VerificationStatus != "" && u.VerificationStatus != filter.VerificationStatus {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) SetVerification(_ context.Context, id string, status domain.VerificationStatus, reason string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.VerificationStatus = status
	if status == domain.VerificationRejected {
		u.RejectionReason = reason
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) CountByVerification(_ context.Context, status domain.VerificationStatus) (int64, error) {
	var n int64
	for _, u := range r.byID {
		if u.VerificationStatus == status {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func registerInput(email string, role string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Asha",
		Email:    email,
		Password: "hunter2secret",
		Role:     role,
		Phone:    "+91 98765",
		Address:  "12 Garden Lane",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	token, user, err := svc.Register(context.Background(), registerInput("asha@example.com", "gardener"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if user.Role != domain.RoleGardener {
		t.Errorf("expected gardener, got %q", user.Role)
	}
	if user.VerificationStatus != domain.VerificationPending {
		t.Errorf("new accounts must start pending, got %q", user.VerificationStatus)
	}
	if user.IsVerified() {
		t.Error("new accounts must not be verified")
	}
	if user.PasswordHash == "hunter2secret" {
		t.Error("password must be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2secret")) != nil {
		t.Error("stored hash must match the password")
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	if _, _, err := svc.Register(context.Background(), registerInput("asha@example.com", "gardener")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), registerInput("asha@example.com", "landowner"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_RejectsBadRoles(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	for _, role := range []string{"admin", "superuser", ""} {
		_, _, err := svc.Register(context.Background(), registerInput("r@example.com", role))
		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Errorf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", 0)

	input := registerInput("a@example.com", "gardener")
	input.Password = ""
	if _, _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	_, registered, err := svc.Register(context.Background(), registerInput("asha@example.com", "landowner"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "asha@example.com", "hunter2secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %q, got %q", registered.ID, user.ID)
	}

	// The token must carry the identity and role claims the middleware reads.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must parse: %v", err)
	}
	if claims["user_id"] != registered.ID {
		t.Errorf("user_id claim: got %v", claims["user_id"])
	}
	if claims["role"] != "landowner" {
		t.Errorf("role claim: got %v", claims["role"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	if _, _, err := svc.Register(context.Background(), registerInput("asha@example.com", "gardener")); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "asha@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", 0)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email must not leak existence, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Profile tests
// ---------------------------------------------------------------------------

func TestAuthService_UpdateProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	_, registered, _ := svc.Register(context.Background(), registerInput("asha@example.com", "gardener"))

	updated, err := svc.UpdateProfile(context.Background(), registered.ID, "Asha K", "+91 11111", "New address")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Asha K" || updated.Phone != "+91 11111" {
		t.Errorf("profile not updated: %+v", updated)
	}
	if updated.Role != domain.RoleGardener {
		t.Error("profile update must not change the role")
	}
}

func TestAuthService_AttachDocuments(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", 0)

	_, registered, _ := svc.Register(context.Background(), registerInput("asha@example.com", "landowner"))

	updated, err := svc.AttachDocuments(context.Background(), registered.ID, []ports.DocumentInput{
		{Name: "id-card.pdf", URL: "/uploads/id-card.pdf"},
		{Name: "utility-bill.pdf", URL: "/uploads/utility-bill.pdf"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(updated.Documents))
	}

	// Documents append, they do not replace.
	updated, err = svc.AttachDocuments(context.Background(), registered.ID, []ports.DocumentInput{
		{Name: "deed.pdf", URL: "/uploads/deed.pdf"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Documents) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(updated.Documents))
	}
}
