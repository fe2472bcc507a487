package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

// AuthService implements registration, login and profile management.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new account with verification pending. Admin accounts
// are provisioned out of band; self-registration only accepts gardener and
// landowner.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	role := domain.Role(input.Role)
	if !role.Valid() || role == domain.RoleAdmin {
		return "", nil, domain.ErrInvalidRole
	}

	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return "", nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       string(hash),
		Role:               role,
		Phone:              input.Phone,
		Address:            input.Address,
		VerificationStatus: domain.VerificationPending,
		Documents:          []domain.Document{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login authenticates by email and password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile mutates the self-editable fields only; role and verification
// state are admin territory.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, phone, address string) (*domain.User, error) {
	return s.users.UpdateProfile(ctx, userID, name, phone, address)
}

// AttachDocuments appends verification document references to the account.
func (s *AuthService) AttachDocuments(ctx context.Context, userID string, docs []ports.DocumentInput) (*domain.User, error) {
	converted := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		converted = append(converted, domain.Document{Name: d.Name, URL: d.URL})
	}
	return s.users.AppendDocuments(ctx, userID, converted)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
