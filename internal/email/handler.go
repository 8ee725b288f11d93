package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/investmetic/investmetic/internal/platform/httpx"
)

// Enqueuer hands a message to the background mail queue.
type Enqueuer interface {
	EnqueueMail(ctx context.Context, to, subject, body string) error
}

// Handler manages the email verification endpoints.
type Handler struct {
	logger   *slog.Logger
	codes    *CodeService
	enqueuer Enqueuer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, codes *CodeService, enqueuer Enqueuer) *Handler {
	return &Handler{logger: logger, codes: codes, enqueuer: enqueuer}
}

// MountRoutes registers the verification endpoints. The issue endpoint is
// rate limited per address well below the global ceiling since each hit
// sends real mail.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/users/authenticate/email/{email}/authcode", func(r chi.Router) {
		r.With(httprate.LimitByIP(3, time.Minute)).Post("/", h.issue)
		r.Get("/", h.verify)
	})
}

func pathEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	address := chi.URLParam(r, "email")
	if _, err := mail.ParseAddress(address); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid email address")
		return "", false
	}
	return address, true
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	address, ok := pathEmail(w, r)
	if !ok {
		return
	}

	code, err := h.codes.IssueCode(r.Context(), address)
	if err != nil {
		h.logger.Error("issue auth code", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	if err := h.enqueuer.EnqueueMail(r.Context(), address, "Email verification", body); err != nil {
		h.logger.Error("enqueue verification mail", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	address, ok := pathEmail(w, r)
	if !ok {
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "code query parameter required")
		return
	}

	if err := h.codes.VerifyCode(r.Context(), address, code); err != nil {
		h.logger.Warn("verify auth code", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
