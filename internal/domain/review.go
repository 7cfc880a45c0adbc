package domain

import "time"

// Review is append-only: no exposed operation updates or deletes one.
type Review struct {
	ReviewID  string    `json:"id" dynamodbav:"review_id"`
	ProductID string    `json:"productId" dynamodbav:"product_id"`
	BuyerID   string    `json:"buyerId" dynamodbav:"buyer_id"`
	BuyerName string    `json:"buyerName" dynamodbav:"buyer_name"`
	Rating    int       `json:"rating" dynamodbav:"rating"`
	Comment   string    `json:"comment" dynamodbav:"comment"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
