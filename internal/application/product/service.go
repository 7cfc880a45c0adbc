package product

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/localmart/api/internal/domain"
	"github.com/localmart/api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldCategory    = "category"
	fieldImageURL    = "image_url"
)

type Service interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	// Update applies the mutable fields only; seller_id, the rating aggregates
	// and created_at are never written from client input.
	Update(ctx context.Context, productID string, req domain.UpdateProductRequest) error
	Delete(ctx context.Context, productID string) error
	AttachImage(ctx context.Context, productID, filename string, r io.Reader, contentType string) (string, error)
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Scan(ctx context.Context, category, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

type imageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo   productStore
	images imageStore
}

func NewService(repo productStore, images imageStore) Service {
	return &service{repo: repo, images: images}
}

// List fetches with store-side equality filters, then applies the price
// bounds in memory. Range filters are not pushed down to the store.
func (s *service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.repo.Scan(ctx, filter.Category, filter.SellerID)
	if err != nil {
		return nil, err
	}
	if filter.MinPrice == nil && filter.MaxPrice == nil {
		return products, nil
	}
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func (s *service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.Get(ctx, productID)
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:   id.New(),
		SellerID:    req.SellerID,
		SellerName:  req.SellerName,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		AvgRating:   0,
		ReviewCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, productID string, req domain.UpdateProductRequest) error {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return fmt.Errorf("price must be non-negative: %w", domain.ErrBadRequest)
		}
		updates[fieldPrice] = *req.Price
	}
	if req.Category != nil {
		updates[fieldCategory] = *req.Category
	}
	if req.ImageURL != nil {
		updates[fieldImageURL] = *req.ImageURL
	}
	if len(updates) == 0 {
		return nil
	}
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return err
	}
	return s.repo.Update(ctx, productID, updates)
}

// Delete removes the product record and its stored image. An orphaned image
// is tolerable, so an image-store failure is logged and the record delete
// still proceeds.
func (s *service) Delete(ctx context.Context, productID string) error {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return err
	}
	if key, ok := objectKey(p.ImageURL); ok {
		if err := s.images.Delete(ctx, key); err != nil {
			slog.Warn("failed to delete product image", "product_id", productID, "key", key, "err", err)
		}
	}
	return s.repo.Delete(ctx, productID)
}

// objectKey extracts the object key from an s3://bucket/key image URL.
// External or empty URLs yield no key.
func objectKey(imageURL string) (string, bool) {
	rest, ok := strings.CutPrefix(imageURL, "s3://")
	if !ok {
		return "", false
	}
	_, key, ok := strings.Cut(rest, "/")
	return key, ok && key != ""
}

func (s *service) AttachImage(ctx context.Context, productID, filename string, r io.Reader, contentType string) (string, error) {
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return "", err
	}
	key := fmt.Sprintf("products/%s/%s", productID, filename)
	url, err := s.images.Upload(ctx, key, r, contentType)
	if err != nil {
		return "", err
	}
	if err := s.repo.Update(ctx, productID, map[string]interface{}{fieldImageURL: url}); err != nil {
		return "", err
	}
	return url, nil
}
