package domain

import "time"

// Marketplace roles. Sellers list products; buyers place orders and review.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

type User struct {
	UserID       string    `json:"uid" dynamodbav:"user_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	// mobile is a GSI key; omitempty keeps mobile-less users out of the index
	// instead of writing an empty string, which DynamoDB rejects for key attributes.
	Mobile       string    `json:"mobile" dynamodbav:"mobile,omitempty"`
	State        string    `json:"state" dynamodbav:"state"`
	City         string    `json:"city" dynamodbav:"city"`
	Role         string    `json:"role" dynamodbav:"role"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Mobile   string `json:"mobile"`
	State    string `json:"state"`
	City     string `json:"city"`
	Role     string `json:"role" validate:"omitempty,oneof=buyer seller"`
}

// UpdateUserRequest carries the profile fields a user may change.
// Identity fields (uid, email, role, created_at) are server-managed and are
// not represented here, so client attempts to set them are dropped at decode.
type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Mobile *string `json:"mobile"`
	State  *string `json:"state"`
	City   *string `json:"city"`
}
