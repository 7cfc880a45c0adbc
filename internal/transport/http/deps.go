package http

import (
	"github.com/localmart/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/localmart/api/internal/infrastructure/jwt"
	s3infra "github.com/localmart/api/internal/infrastructure/s3"
	"github.com/localmart/api/internal/infrastructure/smtp"
	"github.com/localmart/api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
// Mailer, SMSSender and JWTProvider may be nil; the affected features
// degrade gracefully (codes logged instead of sent, no tokens issued).
type Deps struct {
	UserRepo    *dynamo.UserRepo
	ProductRepo *dynamo.ProductRepo
	OrderRepo   *dynamo.OrderRepo
	ReviewRepo  *dynamo.ReviewRepo
	OTPRepo     *dynamo.OTPRepo
	S3Store     *s3infra.Store
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
}
