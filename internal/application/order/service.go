package order

import (
	"context"
	"time"

	"github.com/localmart/api/internal/domain"
	"github.com/localmart/api/internal/pkg/id"
)

type Service interface {
	// Create stores the order with status forced to pending. No inventory
	// decrement, no cross-record transaction.
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type service struct {
	repo orderStore
}

func NewService(repo orderStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	total := 0.0
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}
	o := &domain.Order{
		OrderID:   id.New(),
		UserID:    req.UserID,
		Items:     req.Items,
		Total:     total,
		Status:    domain.OrderStatusPending,
		Address:   req.Address,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
