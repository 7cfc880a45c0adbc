package domain

import "time"

type Product struct {
	ProductID   string    `json:"id" dynamodbav:"product_id"`
	SellerID    string    `json:"sellerId" dynamodbav:"seller_id"`
	SellerName  string    `json:"sellerName,omitempty" dynamodbav:"seller_name"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Category    string    `json:"category" dynamodbav:"category"`
	ImageURL    string    `json:"imageUrl,omitempty" dynamodbav:"image_url"`
	AvgRating   float64   `json:"avgRating" dynamodbav:"avg_rating"`
	ReviewCount int       `json:"reviewCount" dynamodbav:"review_count"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type CreateProductRequest struct {
	SellerID    string  `json:"sellerId" validate:"required"`
	SellerName  string  `json:"sellerName"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateProductRequest deliberately omits sellerId and the rating aggregates:
// the seller binding is immutable and avg_rating/review_count belong to the
// review-aggregation process alone.
type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
}

// ProductFilter holds the optional query filters for product listings.
// Category and SellerID are equality filters applied store-side;
// the price bounds are applied in memory after the read.
type ProductFilter struct {
	Category string
	SellerID string
	MinPrice *float64
	MaxPrice *float64
}
