package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/localmart/api/internal/application/auth"
	"github.com/localmart/api/internal/application/order"
	"github.com/localmart/api/internal/application/product"
	"github.com/localmart/api/internal/application/review"
	"github.com/localmart/api/internal/application/user"
	"github.com/localmart/api/internal/config"
	"github.com/localmart/api/internal/transport/http/handler"
	appmiddleware "github.com/localmart/api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10, applied to the OTP and login endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authDeps := auth.ServiceDeps{
		OTPRepo:   deps.OTPRepo,
		UserRepo:  deps.UserRepo,
		Mailer:    deps.Mailer,
		SMSSender: deps.SMSSender,
		OTPTTL:    cfg.OTPTTL,
	}
	if deps.JWTProvider != nil {
		authDeps.Signer = deps.JWTProvider
	}
	authSvc := auth.NewService(authDeps)
	userSvc := user.NewService(deps.UserRepo)
	productSvc := product.NewService(deps.ProductRepo, deps.S3Store)
	orderSvc := order.NewService(deps.OrderRepo)
	reviewSvc := review.NewService(deps.ReviewRepo, deps.ProductRepo, deps.UserRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, cfg.OTPEchoEnabled)
	userH := handler.NewUserHandler(userSvc)
	productH := handler.NewProductHandler(productSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)

	r.Get("/", healthH.Root)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(sensitiveRL.Limit)
			r.Post("/send-phone-otp", authH.SendPhoneOTP)
			r.Post("/verify-phone-otp", authH.VerifyPhoneOTP)
			r.Post("/send-email-otp", authH.SendEmailOTP)
			r.Post("/verify-email-otp", authH.VerifyEmailOTP)
			r.Post("/login", authH.Login)
		})

		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.Get("/users/{userId}", userH.Get)
		r.Put("/users/{userId}", userH.Update)

		r.Get("/products", productH.List)
		r.Post("/products", productH.Create)
		r.Get("/products/{productId}", productH.Get)
		r.Put("/products/{productId}", productH.Update)
		r.Delete("/products/{productId}", productH.Delete)
		r.Post("/products/{productId}/image", productH.UploadImage)

		r.Get("/products/{productId}/reviews", reviewH.ListByProduct)
		r.With(authMw).Post("/products/{productId}/reviews", reviewH.Submit)

		r.Post("/orders", orderH.Create)
		r.Get("/orders/user/{userId}", orderH.ListByUser)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Endpoint not found"}`))
	})

	return r
}
