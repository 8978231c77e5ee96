package routes

import (
	"net/http"

	"givebridge/handlers"
	"givebridge/middleware"
	"givebridge/models"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type Handlers struct {
	User    *handlers.UserHandler
	Item    *handlers.ItemHandler
	Receipt *handlers.ReceiptHandler
	Health  *handlers.HealthHandler
}

type Options struct {
	Logger         zerolog.Logger
	Tokens         middleware.TokenParser
	Limiter        middleware.Limiter
	RateLimitRPS   int
	RateLimitBurst int
	AllowedOrigin  string
	// TrustProxy rewrites RemoteAddr from forwarding headers. Leave it off
	// unless a proxy in front strips client-supplied values.
	TrustProxy bool
	// UploadDir is served under /uploads/images when set.
	UploadDir string
}

// CORS middleware
func withCORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Request-ID")

			// Handle preflight request
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func SetupRoutes(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog())
	r.Use(handlers.RecoverWrapper)
	r.Use(withCORS(opts.AllowedOrigin))

	r.NotFound(handlers.ErrorWrapper(func(w http.ResponseWriter, r *http.Request) error {
		return handlers.NewHTTPError("Could not find this route.", http.StatusNotFound, nil)
	}))

	r.Get("/health", h.Health.Health)

	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/images/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Get("/uploads/images/*", fs.ServeHTTP)
	}

	authenticated := middleware.Authenticate(opts.Tokens)

	// User routes
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", handlers.ErrorWrapper(h.User.GetUsers))
		r.Get("/active", handlers.ErrorWrapper(h.Item.ActiveDonationRequests))

		r.With(middleware.RateLimit(opts.Limiter, "signup", opts.RateLimitRPS, opts.RateLimitBurst)).
			Post("/signup", handlers.ErrorWrapper(h.User.Signup))
		r.With(middleware.RateLimit(opts.Limiter, "login", opts.RateLimitRPS, opts.RateLimitBurst)).
			Post("/login", handlers.ErrorWrapper(h.User.Login))

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.RequireType(string(models.UserTypeVolunteer), string(models.UserTypeHead)))
			r.Post("/accept", handlers.ErrorWrapper(h.Item.AcceptDonationRequest))
			r.Post("/complete", handlers.ErrorWrapper(h.Item.CompleteDonationRequest))
		})
	})

	// Donation item routes
	r.Route("/api/items", func(r chi.Router) {
		r.Use(authenticated)
		r.With(middleware.RequireType(string(models.UserTypeHomeOwner))).
			Post("/", handlers.ErrorWrapper(h.Item.CreateItem))
		r.Get("/{itemID}/receipt", handlers.ErrorWrapper(h.Receipt.DonationReceipt))
	})

	return r
}
