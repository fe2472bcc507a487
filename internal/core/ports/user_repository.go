package ports

import (
	"context"

	"github.com/greenspace/marketplace/internal/core/domain"
)

// UserListFilter narrows admin user listings. Zero values mean no filter.
type UserListFilter struct {
	Role               domain.Role
	VerificationStatus domain.VerificationStatus
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, phone, address string) (*domain.User, error)
	// AppendDocuments adds document references to the user's existing set.
	AppendDocuments(ctx context.Context, id string, docs []domain.Document) (*domain.User, error)
	List(ctx context.Context, filter UserListFilter) ([]*domain.User, error)
	// SetVerification updates the review state; reason is stored only on rejection.
	SetVerification(ctx context.Context, id string, status domain.VerificationStatus, reason string) (*domain.User, error)

	CountAll(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	CountByVerification(ctx context.Context, status domain.VerificationStatus) (int64, error)
}
