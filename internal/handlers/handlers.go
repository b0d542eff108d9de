package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pointsdesk/pointsdesk/docs"
	"github.com/pointsdesk/pointsdesk/internal/feed"
	authhandlers "github.com/pointsdesk/pointsdesk/internal/handlers/auth"
	pointshandlers "github.com/pointsdesk/pointsdesk/internal/handlers/points"
	usershandlers "github.com/pointsdesk/pointsdesk/internal/handlers/users"
	"github.com/pointsdesk/pointsdesk/internal/service"
	"github.com/pointsdesk/pointsdesk/pkg/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type PointsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Claim(w http.ResponseWriter, r *http.Request)
	AddWeight(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type UsersHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler   AuthHandler
	PointsHandler PointsHandler
	UsersHandler  UsersHandler

	hub *feed.Hub
}

func New(s *service.Services, hub *feed.Hub) *Handlers {
	return &Handlers{
		AuthHandler:   authhandlers.New(s.AuthService),
		PointsHandler: pointshandlers.New(s.LedgerService, s.PointsService, s.IngestService, s.ReportService),
		UsersHandler:  usershandlers.New(s.AuthService),
		hub:           hub,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/points", func(r chi.Router) {
				r.Get("/", h.PointsHandler.List)
				r.Get("/report", h.PointsHandler.Report)
				r.Post("/upload", h.PointsHandler.Upload)
				r.Route("/{code}", func(r chi.Router) {
					r.Patch("/", h.PointsHandler.Edit)
					r.Delete("/", h.PointsHandler.Delete)
					r.Post("/claim", h.PointsHandler.Claim)
					r.Post("/weight", h.PointsHandler.AddWeight)
				})
			})
			r.Get("/ws", h.hub.ServeWS)

			r.Group(func(r chi.Router) {
				r.Use(auth.AdminMiddleware)
				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.UsersHandler.List)
					r.Post("/", h.UsersHandler.Create)
					r.Put("/{id}", h.UsersHandler.Update)
				})
			})
		})
	})

	return r
}
