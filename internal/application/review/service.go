package review

import (
	"context"
	"fmt"
	"time"

	"github.com/localmart/api/internal/domain"
	"github.com/localmart/api/internal/pkg/id"
)

type Service interface {
	// Submit inserts a review for the authenticated buyer and refreshes the
	// product's aggregates. buyerID must come from verified session claims.
	Submit(ctx context.Context, productID, buyerID string, req domain.SubmitReviewRequest) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	// Recompute re-reads the full review set and writes the arithmetic mean
	// and count onto the product. No-op when the set is empty. The
	// read-then-write pair is unguarded: concurrent submitters race and the
	// last write wins.
	Recompute(ctx context.Context, productID string) error
}

type reviewStore interface {
	Put(ctx context.Context, r *domain.Review) error
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

type productStore interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
	UpdateRating(ctx context.Context, productID string, avgRating float64, reviewCount int) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	reviews  reviewStore
	products productStore
	users    userStore
}

func NewService(reviews reviewStore, products productStore, users userStore) Service {
	return &service{reviews: reviews, products: products, users: users}
}

func (s *service) Submit(ctx context.Context, productID, buyerID string, req domain.SubmitReviewRequest) (*domain.Review, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("must be logged in to submit reviews: %w", domain.ErrUnauthorized)
	}
	// The product must exist before the review lands: the rating write is an
	// unconditional UpdateItem and would upsert a phantom product otherwise.
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}
	buyerName := "Anonymous"
	if u, err := s.users.Get(ctx, buyerID); err == nil && u.Name != "" {
		buyerName = u.Name
	}
	r := &domain.Review{
		ReviewID:  id.New(),
		ProductID: productID,
		BuyerID:   buyerID,
		BuyerName: buyerName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Put(ctx, r); err != nil {
		return nil, err
	}
	if err := s.Recompute(ctx, productID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

func (s *service) Recompute(ctx context.Context, productID string) error {
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return s.products.UpdateRating(ctx, productID, avg, len(reviews))
}
