package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ubloom/engine/internal/goal"
	"github.com/ubloom/engine/internal/journal"
	"github.com/ubloom/engine/internal/middlewares"
	"github.com/ubloom/engine/internal/progress"
	"github.com/ubloom/engine/internal/reflection"
	"github.com/ubloom/engine/internal/session"
	"github.com/ubloom/engine/internal/shop"
)

type RouterConfig struct {
	ProgressHandler   *progress.Handler
	GoalHandler       *goal.Handler
	JournalHandler    *journal.Handler
	ReflectionHandler *reflection.Handler
	ShopHandler       *shop.Handler
	SessionHandler    *session.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Mount("/progress", progress.Routes(cfg.ProgressHandler))
	r.Mount("/goals", goal.Routes(cfg.GoalHandler))
	r.Mount("/journal", journal.Routes(cfg.JournalHandler))
	r.Mount("/reflection", reflection.Routes(cfg.ReflectionHandler))
	r.Mount("/shop", shop.Routes(cfg.ShopHandler))
	r.Mount("/session", session.Routes(cfg.SessionHandler))

	return r
}
