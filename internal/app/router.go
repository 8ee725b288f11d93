package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/investmetic/investmetic/internal/email"
	"github.com/investmetic/investmetic/internal/notice"
	"github.com/investmetic/investmetic/internal/observability"
	"github.com/investmetic/investmetic/internal/qna"
	"github.com/investmetic/investmetic/internal/subscription"
	"github.com/investmetic/investmetic/internal/users"
	"github.com/investmetic/investmetic/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	UsersHandler        *users.Handler
	QnaHandler          *qna.Handler
	NoticeHandler       *notice.Handler
	SubscriptionHandler *subscription.Handler
	EmailHandler        *email.Handler
	JobHandler          *jobs.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		if params.UsersHandler != nil {
			params.UsersHandler.MountRoutes(r)
		}
		if params.QnaHandler != nil {
			params.QnaHandler.MountRoutes(r)
		}
		if params.NoticeHandler != nil {
			params.NoticeHandler.MountRoutes(r)
		}
		if params.SubscriptionHandler != nil {
			params.SubscriptionHandler.MountRoutes(r)
		}
		if params.EmailHandler != nil {
			params.EmailHandler.MountRoutes(r)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
