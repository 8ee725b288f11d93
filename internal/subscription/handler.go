package subscription

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/users"
)

// Handler manages subscription endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the subscription endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/strategies/{strategyID}/subscribe", h.toggle)
	r.Get("/investor/subscriptions", h.list)
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (shared.Principal, users.Role, bool) {
	principal, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return shared.Principal{}, "", false
	}
	role, err := users.ParseRole(principal.Role)
	if err != nil {
		httpx.RespondError(w, httpx.ErrForbidden)
		return shared.Principal{}, "", false
	}
	return principal, role, true
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	principal, role, ok := h.principal(w, r)
	if !ok {
		return
	}
	strategyID, err := strconv.ParseInt(chi.URLParam(r, "strategyID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid strategy id")
		return
	}

	resp, err := h.service.Toggle(r.Context(), strategyID, principal.UserID, role)
	if err != nil {
		h.logger.Error("toggle subscription", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.principal(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	page := shared.PageRequest{}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		page.Page = p
	}
	if pp, err := strconv.Atoi(q.Get("per_page")); err == nil {
		page.PerPage = pp
	}

	resp, err := h.service.ListByUser(r.Context(), principal.UserID, page)
	if err != nil {
		h.logger.Error("list subscriptions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}
