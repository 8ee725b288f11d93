package qna

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

// Handler manages inquiry endpoints.
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
		// unknown roles fall back to a denial, never a crash
		httpx.RespondError(w, httpx.ErrForbidden)
		return shared.Principal{}, "", false
	}
	return principal, role, true
}

func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.principal(w, r)
	if !ok {
		return
	}
	strategyID, err := urlID(r, "strategyID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid strategy id")
		return
	}

	var req QuestionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	question, err := h.service.CreateQuestion(r.Context(), principal.UserID, strategyID, req)
	if err != nil {
		h.logger.Error("create question", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"question_id": question.ID})
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.principal(w, r)
	if !ok {
		return
	}
	strategyID, err := urlID(r, "strategyID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid strategy id")
		return
	}
	questionID, err := urlID(r, "questionID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid question id")
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), strategyID, questionID, principal.UserID); err != nil {
		h.logger.Error("delete question", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createAnswer(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.principal(w, r)
	if !ok {
		return
	}
	questionID, err := urlID(r, "questionID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid question id")
		return
	}

	var req AnswerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	answer, err := h.service.CreateAnswer(r.Context(), questionID, principal.UserID, req)
	if err != nil {
		h.logger.Error("create answer", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"answer_id": answer.ID})
}

func (h *Handler) deleteAnswer(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.principal(w, r)
	if !ok {
		return
	}
	questionID, err := urlID(r, "questionID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid question id")
		return
	}
	answerID, err := urlID(r, "answerID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid answer id")
		return
	}

	if err := h.service.DeleteAnswer(r.Context(), answerID, questionID, principal.UserID); err != nil {
		h.logger.Error("delete answer", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseListQuery reads the optional search dimensions and pagination from
// the query string.
func parseListQuery(r *http.Request) (Filter, shared.PageRequest) {
	q := r.URL.Query()
	filter := Filter{
		Keyword: q.Get("keyword"),
		Target:  KeywordTarget(q.Get("target")),
		State:   StateFilter(q.Get("state")),
	}

	page := shared.PageRequest{
		SortBy:  q.Get("sort_by"),
		SortDir: q.Get("sort_dir"),
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		page.Page = p
	}
	if pp, err := strconv.Atoi(q.Get("per_page")); err == nil {
		page.PerPage = pp
	}
	return filter, page
}

func (h *Handler) investorQuestions(w http.ResponseWriter, r *http.Request) {
	principal, role, ok := h.principal(w, r)
	if !ok {
		return
	}
	filter, page := parseListQuery(r)
	result, err := h.service.InvestorQuestions(r.Context(), principal.UserID, role, filter, page)
	if err != nil {
		h.logger.Error("investor questions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) traderQuestions(w http.ResponseWriter, r *http.Request) {
	principal, role, ok := h.principal(w, r)
	if !ok {
		return
	}
	filter, page := parseListQuery(r)
	result, err := h.service.TraderQuestions(r.Context(), principal.UserID, role, filter, page)
	if err != nil {
		h.logger.Error("trader questions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) adminQuestions(w http.ResponseWriter, r *http.Request) {
	_, role, ok := h.principal(w, r)
	if !ok {
		return
	}
	filter, page := parseListQuery(r)
	result, err := h.service.AdminQuestions(r.Context(), role, filter, page)
	if err != nil {
		h.logger.Error("admin questions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) questionDetail(w http.ResponseWriter, r *http.Request) {
	principal, role, ok := h.principal(w, r)
	if !ok {
		return
	}
	questionID, err := urlID(r, "questionID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid question id")
		return
	}

	detail, err := h.service.QuestionDetail(r.Context(), questionID, principal.UserID, role)
	if err != nil {
		h.logger.Error("question detail", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) adminQuestionDetail(w http.ResponseWriter, r *http.Request) {
	_, role, ok := h.principal(w, r)
	if !ok {
		return
	}
	questionID, err := urlID(r, "questionID")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid question id")
		return
	}

	detail, err := h.service.AdminQuestionDetail(r.Context(), questionID, role)
	if err != nil {
		h.logger.Error("admin question detail", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}
