package order

import (
	"context"
	"errors"
	"testing"

	"github.com/localmart/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) Put(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *mockOrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if os, _ := args.Get(0).([]domain.Order); os != nil {
		return os, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreate_ComputesTotalAndForcesPending(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	svc := NewService(repo)
	o, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		UserID: "u1",
		Items: []domain.OrderItem{
			{ProductID: "p1", Title: "Tomatoes", Price: 40, Quantity: 2},
			{ProductID: "p2", Title: "Onions", Price: 25, Quantity: 1},
		},
		Address: "12 Market Rd",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, o.OrderID)
	assert.Equal(t, 105.0, o.Total)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.False(t, o.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestCreate_StoreFailure_Propagates(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("Put", mock.Anything, mock.Anything).Return(errors.New("table missing"))

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		UserID: "u1",
		Items:  []domain.OrderItem{{ProductID: "p1", Price: 10, Quantity: 1}},
	})
	require.Error(t, err)
}

func TestListByUser_Passthrough(t *testing.T) {
	repo := &mockOrderStore{}
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.Order{
		{OrderID: "o2"}, {OrderID: "o1"},
	}, nil)

	svc := NewService(repo)
	got, err := svc.ListByUser(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "o2", got[0].OrderID)
}
