package notice

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/users"
)

// Handler manages announcement endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
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

func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	principal, role, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	resp, err := h.service.Create(r.Context(), principal.UserID, role, req)
	if err != nil {
		h.logger.Error("create notice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.principal(w, r)
	if !ok {
		return
	}
	noticeID, err := urlID(r, "noticeID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid notice id")
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	resp, err := h.service.Update(r.Context(), noticeID, principal.UserID, req)
	if err != nil {
		h.logger.Error("update notice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	noticeID, err := urlID(r, "noticeID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid notice id")
		return
	}

	detail, err := h.service.Get(r.Context(), noticeID)
	if err != nil {
		h.logger.Error("get notice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := shared.PageRequest{}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		page.Page = p
	}
	if pp, err := strconv.Atoi(q.Get("per_page")); err == nil {
		page.PerPage = pp
	}

	result, err := h.service.List(r.Context(), q.Get("keyword"), page)
	if err != nil {
		h.logger.Error("list notices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	principal, role, ok := h.principal(w, r)
	if !ok {
		return
	}
	noticeID, err := urlID(r, "noticeID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid notice id")
		return
	}

	if err := h.service.Delete(r.Context(), noticeID, principal.UserID, role); err != nil {
		h.logger.Error("delete notice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
