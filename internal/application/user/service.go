package user

import (
	"context"
	"fmt"
	"time"

	"github.com/localmart/api/internal/domain"
	"github.com/localmart/api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName   = "name"
	fieldMobile = "mobile"
	fieldState  = "state"
	fieldCity   = "city"
)

type Service interface {
	Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile applies the allowed profile fields only. Identity fields
	// (uid, email, role, created_at) are never written from client input.
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateUserRequest) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = domain.RoleBuyer
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		State:        req.State,
		City:         req.City,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateUserRequest) error {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	// mobile keys a GSI, and DynamoDB rejects empty strings for key attributes,
	// so an empty value is dropped rather than written.
	if req.Mobile != nil && *req.Mobile != "" {
		updates[fieldMobile] = *req.Mobile
	}
	if req.State != nil {
		updates[fieldState] = *req.State
	}
	if req.City != nil {
		updates[fieldCity] = *req.City
	}
	if len(updates) == 0 {
		return nil
	}
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, updates)
}
