package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/homeline/homeline-go/internal/middleware"
	"github.com/homeline/homeline-go/internal/model"
	"github.com/homeline/homeline-go/internal/service"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Auth      *service.AuthService
	Listings  *service.ListingService
	Inquiries *service.InquiryService
	Tokens    middleware.TokenParser
	Metrics   *middleware.Metrics
	Login     *middleware.LoginLimiter
	Log       *slog.Logger
	// Done stops background work owned by the router, such as rate limiter
	// eviction.
	Done <-chan struct{}
}

// NewRouter wires every route of the API.
func NewRouter(d Deps) http.Handler {
	authHandler := NewAuthHandler(d.Auth, d.Log)
	listingHandler := NewListingHandler(d.Listings, d.Log)
	inquiryHandler := NewInquiryHandler(d.Inquiries, d.Listings, d.Log)

	buyer := middleware.RequireRoles(d.Auth, model.RoleBuyer)
	realtor := middleware.RequireRoles(d.Auth, model.RoleRealtor)
	anyone := middleware.RequireRoles(d.Auth, model.RoleBuyer, model.RoleRealtor)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
		r.Handle("/metrics", d.Metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Tokens))

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(d.Done, 5, 10))
				r.Post("/signup/{userType}", authHandler.HandleSignup)
				r.Post("/key", authHandler.HandleProductKey)
				r.With(d.Login.Middleware).Post("/signin", authHandler.HandleSignin)
			})
			r.With(anyone).Get("/me", authHandler.HandleMe)
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", listingHandler.HandleList)
			r.With(realtor).Post("/", listingHandler.HandleCreate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", listingHandler.HandleGet)
				r.With(realtor).Patch("/", listingHandler.HandleUpdate)
				r.With(realtor).Delete("/", listingHandler.HandleDelete)

				r.With(buyer).Post("/inquiries", inquiryHandler.HandleCreate)
				r.With(realtor).Get("/inquiries", inquiryHandler.HandleList)
			})
		})
	})

	return r
}
