package ports

import (
	"context"

	"github.com/greenspace/marketplace/internal/core/domain"
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	Address  string
}

// DocumentInput is a reference to an already-uploaded verification document.
type DocumentInput struct {
	Name string
	URL  string
}

// AuthService implements account registration, login and profile management.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, phone, address string) (*domain.User, error)
	AttachDocuments(ctx context.Context, userID string, docs []DocumentInput) (*domain.User, error)
}
