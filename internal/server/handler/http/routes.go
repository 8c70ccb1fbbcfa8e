package http

import (
	"net/http"

	"github.com/atinyakov/AdmissionDesk/internal/middleware"
	"github.com/atinyakov/AdmissionDesk/internal/models"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the admissions HTTP handler.
//
// Routes:
//
//	POST /submit         → inquiryHandler.Submit
//	POST /staff_login    → authHandler.StaffLogin
//	POST /admin          → authHandler.AdminLogin
//	POST /logout         → authHandler.Logout
//	GET  /display        → inquiryHandler.Display  (staff, admin)
//	GET  /export         → inquiryHandler.Export   (staff, admin)
//	POST /add            → authHandler.AddUser     (admin)
//	GET  <page paths>    → pageHandler.Serve, guarded per page
//	GET  anything else   → pageHandler.Assets
//
// Middleware chain (applied in order):
//  1. RequestID
//  2. WithRequestLogging(logger)
//  3. Recoverer
func NewRouter(
	authHandler *AuthHandler,
	inquiryHandler *InquiryHandler,
	pageHandler *PageHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	requireRoles := func(loginPath string, roles ...models.Role) func(http.Handler) http.Handler {
		return middleware.SessionAuth(authHandler.Cookies, authHandler.Sessions, logger, loginPath, roles...)
	}

	// Public endpoints
	r.Post("/submit", inquiryHandler.Submit)
	r.Post("/staff_login", authHandler.StaffLogin)
	r.Post("/admin", authHandler.AdminLogin)
	r.Post("/logout", authHandler.Logout)

	// Staff and admin data
	r.Group(func(r chi.Router) {
		r.Use(requireRoles("", models.RoleStaff, models.RoleAdmin))
		r.Get("/display", inquiryHandler.Display)
		r.Get("/export", inquiryHandler.Export)
	})

	// Admin only
	r.Group(func(r chi.Router) {
		r.Use(requireRoles("", models.RoleAdmin))
		r.Post("/add", authHandler.AddUser)
	})

	for _, p := range pageHandler.Pages {
		if len(p.Roles) == 0 {
			r.Get(p.Path, pageHandler.Serve(p))
			continue
		}
		r.With(requireRoles(p.LoginPath, p.Roles...)).Get(p.Path, pageHandler.Serve(p))
	}

	r.NotFound(pageHandler.Assets)

	return r
}
