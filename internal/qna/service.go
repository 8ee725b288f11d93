package qna

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/strategy"
	"github.com/investmetic/investmetic/internal/users"
)

// RepositoryPort defines data access for inquiries and answers. Multi-step
// writes (answer creation and deletion, question deletion) are atomic: the
// answer row and the question state never diverge.
type RepositoryPort interface {
	SaveQuestion(ctx context.Context, q *Question) error
	FindQuestionByID(ctx context.Context, id int64) (*QuestionView, error)
	DeleteQuestion(ctx context.Context, id int64) error
	Search(ctx context.Context, conds []Condition, page shared.PageRequest) ([]QuestionView, int, error)
	SaveAnswer(ctx context.Context, questionID int64, content string) (*Answer, error)
	DeleteAnswer(ctx context.Context, answerID, questionID int64) error
}

// UserDirectory resolves caller identities.
type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*users.User, error)
}

// StrategyDirectory resolves strategy references.
type StrategyDirectory interface {
	FindByID(ctx context.Context, id int64) (*strategy.Strategy, error)
}

// Service orchestrates the inquiry lifecycle.
type Service struct {
	repo       RepositoryPort
	users      UserDirectory
	strategies StrategyDirectory
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, users UserDirectory, strategies StrategyDirectory) *Service {
	return &Service{repo: repo, users: users, strategies: strategies}
}

// CreateQuestion registers a new inquiry in WAITING state. Any resolvable
// identity may ask about any existing strategy.
func (s *Service) CreateQuestion(ctx context.Context, userID, strategyID int64, req QuestionRequest) (*Question, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve asker: %w", err)
	}
	st, err := s.strategies.FindByID(ctx, strategyID)
	if err != nil {
		return nil, fmt.Errorf("resolve strategy: %w", err)
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", httpx.ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content required", httpx.ErrValidation)
	}

	q := &Question{
		UserID:     user.ID,
		StrategyID: st.ID,
		Title:      title,
		Content:    content,
		State:      StateWaiting,
	}
	if err := s.repo.SaveQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("save question: %w", err)
	}
	return q, nil
}

// DeleteQuestion removes an inquiry and any answer it carries. The caller's
// stored role decides access: the asker, the strategy owner or an admin.
func (s *Service) DeleteQuestion(ctx context.Context, strategyID, questionID, userID int64) error {
	view, err := s.repo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("resolve question: %w", err)
	}
	if _, err := s.strategies.FindByID(ctx, strategyID); err != nil {
		return fmt.Errorf("resolve strategy: %w", err)
	}
	caller, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve caller: %w", err)
	}

	if !CanAccess(caller, *view) {
		return httpx.ErrForbidden
	}
	return s.repo.DeleteQuestion(ctx, questionID)
}

// CreateAnswer records the strategy owner's reply and completes the inquiry.
func (s *Service) CreateAnswer(ctx context.Context, questionID, traderID int64, req AnswerRequest) (*Answer, error) {
	view, err := s.repo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("resolve question: %w", err)
	}
	if view.Strategy == nil || view.Strategy.OwnerID != traderID {
		return nil, httpx.ErrForbidden
	}
	if view.Answered() {
		return nil, fmt.Errorf("%w: question already answered", httpx.ErrDuplicate)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content required", httpx.ErrValidation)
	}

	answer, err := s.repo.SaveAnswer(ctx, questionID, content)
	if err != nil {
		return nil, fmt.Errorf("save answer: %w", err)
	}
	return answer, nil
}

// DeleteAnswer removes the reply and reopens the inquiry. Only the strategy
// owner may do this; a second delete of the same answer reports not found.
func (s *Service) DeleteAnswer(ctx context.Context, answerID, questionID, traderID int64) error {
	view, err := s.repo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("resolve question: %w", err)
	}
	if view.Answer == nil || view.Answer.ID != answerID {
		return fmt.Errorf("%w: answer", httpx.ErrNotFound)
	}
	if view.Strategy == nil || view.Strategy.OwnerID != traderID {
		return httpx.ErrForbidden
	}
	return s.repo.DeleteAnswer(ctx, answerID, questionID)
}

// InvestorQuestions lists the caller's own inquiries.
func (s *Service) InvestorQuestions(ctx context.Context, userID int64, role users.Role, f Filter, page shared.PageRequest) (*QuestionPage, error) {
	if !role.IsInvestorClass() {
		return nil, httpx.ErrForbidden
	}
	return s.searchQuestions(ctx, &userID, role, f, page)
}

// TraderQuestions lists inquiries against the caller's strategies.
func (s *Service) TraderQuestions(ctx context.Context, userID int64, role users.Role, f Filter, page shared.PageRequest) (*QuestionPage, error) {
	if !role.IsTraderClass() {
		return nil, httpx.ErrForbidden
	}
	return s.searchQuestions(ctx, &userID, role, f, page)
}

// AdminQuestions lists every inquiry. The caller id is dropped so the
// ownership predicate never applies.
func (s *Service) AdminQuestions(ctx context.Context, role users.Role, f Filter, page shared.PageRequest) (*QuestionPage, error) {
	if !role.IsAdminClass() {
		return nil, httpx.ErrForbidden
	}
	return s.searchQuestions(ctx, nil, role, f, page)
}

// QuestionDetail returns the full inquiry projection for its asker, the
// strategy owner or an admin.
func (s *Service) QuestionDetail(ctx context.Context, questionID, userID int64, role users.Role) (*QuestionDetailResponse, error) {
	var (
		view   *QuestionView
		caller *users.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.repo.FindQuestionByID(gctx, questionID)
		if err != nil {
			return fmt.Errorf("resolve question: %w", err)
		}
		view = v
		return nil
	})
	g.Go(func() error {
		u, err := s.users.FindByID(gctx, userID)
		if err != nil {
			return fmt.Errorf("resolve caller: %w", err)
		}
		caller = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !CanAccess(caller, *view) {
		return nil, httpx.ErrForbidden
	}
	detail := newQuestionDetailResponse(*view, role)
	return &detail, nil
}

// AdminQuestionDetail returns the detail projection without an ownership
// check. Admin class only.
func (s *Service) AdminQuestionDetail(ctx context.Context, questionID int64, role users.Role) (*QuestionDetailResponse, error) {
	if !role.IsAdminClass() {
		return nil, httpx.ErrForbidden
	}
	view, err := s.repo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("resolve question: %w", err)
	}
	detail := newQuestionDetailResponse(*view, role)
	return &detail, nil
}

func (s *Service) searchQuestions(ctx context.Context, callerID *int64, role users.Role, f Filter, page shared.PageRequest) (*QuestionPage, error) {
	page = page.Normalize()
	conds := Compile(callerID, role, f)

	views, total, err := s.repo.Search(ctx, conds, page)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}

	rows := make([]QuestionRow, 0, len(views))
	for _, v := range views {
		rows = append(rows, newQuestionRow(v, role))
	}
	return &QuestionPage{
		Questions:  rows,
		Pagination: shared.NewPagination(page.Page, page.PerPage, total),
	}, nil
}
