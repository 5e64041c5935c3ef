package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wishflow/wishflow/internal/handler"
	"github.com/wishflow/wishflow/internal/middleware"
	"github.com/wishflow/wishflow/internal/store"
)

// Server wires the stores and handlers onto one router. The presentation
// layer (whatever renders the dashboard) talks to these routes only; nothing
// reaches into the stores directly.
type Server struct {
	db      *sql.DB
	incomeH *handler.IncomeHandler
	habitH  *handler.HabitHandler
	wishH   *handler.WishHandler
	poolH   *handler.PoolHandler
	logger  *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	incomeStore := store.NewIncomeStore(db)
	habitStore := store.NewHabitStore(db)
	wishStore := store.NewWishStore(db)
	poolStore := store.NewPoolStore(db)

	return &Server{
		db:      db,
		incomeH: handler.NewIncomeHandler(incomeStore, logger.With("component", "income")),
		habitH:  handler.NewHabitHandler(habitStore, logger.With("component", "habit")),
		wishH:   handler.NewWishHandler(wishStore, logger.With("component", "wish")),
		poolH:   handler.NewPoolHandler(poolStore, logger.With("component", "pool")),
		logger:  logger,
	}
}

// Router returns the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(s.logger.With("component", "http")))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/{user}", func(r chi.Router) {
		r.Route("/income", func(r chi.Router) {
			r.Post("/", s.incomeH.Create)
			r.Get("/", s.incomeH.List)
			r.Put("/{id}", s.incomeH.Update)
			r.Delete("/{id}", s.incomeH.Delete)
			r.Post("/{id}/attendance", s.incomeH.RecordAttendance)
		})
		r.Get("/attendance", s.incomeH.ListAttendance)

		r.Route("/habits", func(r chi.Router) {
			r.Post("/", s.habitH.Create)
			r.Get("/", s.habitH.List)
			r.Put("/{id}", s.habitH.Update)
			r.Delete("/{id}", s.habitH.Delete)
			r.Post("/{id}/checkins", s.habitH.RecordCheckin)
		})
		r.Get("/checkins", s.habitH.ListCheckins)

		r.Route("/wishes", func(r chi.Router) {
			r.Post("/", s.wishH.Create)
			r.Get("/", s.wishH.List)
			r.Put("/{id}", s.wishH.Update)
			r.Delete("/{id}", s.wishH.Delete)
			r.Post("/{id}/complete", s.wishH.Complete)
		})

		r.Get("/pool", s.poolH.Balance)
		r.Post("/pool/unlock", s.poolH.Unlock)
	})

	return r
}
