package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/adrewards/docs"
	"github.com/GlebRadaev/adrewards/internal/config"
	adminhandlers "github.com/GlebRadaev/adrewards/internal/handlers/admin"
	userhandlers "github.com/GlebRadaev/adrewards/internal/handlers/user"
	withdrawalhandlers "github.com/GlebRadaev/adrewards/internal/handlers/withdrawal"
	"github.com/GlebRadaev/adrewards/internal/service"
	"github.com/GlebRadaev/adrewards/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type UserHandler interface {
	Resolve(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	AdView(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Withdraw(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Proof(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	UserHandler       UserHandler
	WithdrawalHandler WithdrawalHandler
	AdminHandler      AdminHandler

	corsOrigin string
}

func New(s *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		UserHandler:       userhandlers.New(s.UserService),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		AdminHandler:      adminhandlers.New(s.AdminService, s.AdminWithdrawals),
		corsOrigin:        cfg.CORSOrigin,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{h.corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/", h.UserHandler.Resolve)
			r.Get("/", h.UserHandler.Get)
			r.Put("/", h.UserHandler.AdView)

			r.Group(func(r chi.Router) {
				r.Use(auth.AdminMiddleware)
				r.Delete("/", h.UserHandler.Reset)
			})
		})
		r.Post("/withdraw", h.WithdrawalHandler.Withdraw)
		r.Get("/withdrawal-history", h.WithdrawalHandler.History)
		r.Get("/proof-of-payment", h.WithdrawalHandler.Proof)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.AdminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.AdminMiddleware)
				r.Patch("/withdrawals/{id}/status", h.AdminHandler.UpdateStatus)
				r.Get("/withdrawals/export", h.AdminHandler.Export)
			})
		})
	})

	return r
}
