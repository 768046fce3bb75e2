// Package api exposes the service over the HTTP JSON contract.
//
// Every response carries an "ok" flag. Failures additionally carry a
// human-readable "error" message, surfaced verbatim to users, and a machine
// "code" so clients can classify the failure without parsing the message.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"billsplit/internal/auth"
	"billsplit/internal/errs"
	"billsplit/internal/middleware"
	"billsplit/internal/service"
)

// Server bundles the services behind the HTTP routes.
type Server struct {
	auth  *service.AuthService
	users *service.UserService
	bills *service.BillService
	jwt   *auth.JWTManager
}

// NewServer creates a Server over the given services.
func NewServer(authSvc *service.AuthService, users *service.UserService, bills *service.BillService, jwt *auth.JWTManager) *Server {
	return &Server{auth: authSvc, users: users, bills: bills, jwt: jwt}
}

// Router builds the route table. Mutating routes require a bearer token;
// admin routes are additionally re-checked against the database inside the
// service layer.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.OptionalAuth(s.jwt))
	r.Use(middleware.Logging)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Get("/users", s.handleListUsers)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwt, rejectUnauthenticated))

			r.Get("/bills", s.handleListBills)
			r.Post("/bills", s.handleCreateBill)
			r.Get("/bills/{billID}", s.handleGetBill)
			r.Post("/bills/{billID}/pay", s.handlePayShare)

			r.Post("/admin/add_user", s.handleAddUser)
			r.Post("/admin/delete_user", s.handleDeleteUser)
			r.Post("/admin/delete_bill", s.handleDeleteBill)
		})
	})

	return r
}

func rejectUnauthenticated(w http.ResponseWriter, err error) {
	writeError(w, errs.New(errs.KindAuth, err.Error()))
}
