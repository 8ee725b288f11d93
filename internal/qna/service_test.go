package qna

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/strategy"
	"github.com/investmetic/investmetic/internal/users"
)

// ============================================================================
// IN-MEMORY FAKES
// ============================================================================

type memoryUsers struct {
	byID map[int64]*users.User
}

func (m *memoryUsers) FindByID(ctx context.Context, id int64) (*users.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: user", httpx.ErrNotFound)
}

type memoryStrategies struct {
	byID map[int64]*strategy.Strategy
}

func (m *memoryStrategies) FindByID(ctx context.Context, id int64) (*strategy.Strategy, error) {
	if s, ok := m.byID[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: strategy", httpx.ErrNotFound)
}

type memoryStore struct {
	questions  map[int64]*Question
	answers    map[int64]*Answer
	users      *memoryUsers
	strategies *memoryStrategies
	nextID     int64
	base       time.Time
}

func newMemoryStore(u *memoryUsers, s *memoryStrategies) *memoryStore {
	return &memoryStore{
		questions:  make(map[int64]*Question),
		answers:    make(map[int64]*Answer),
		users:      u,
		strategies: s,
		base:       time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) stamp() time.Time {
	m.nextID++
	return m.base.Add(time.Duration(m.nextID) * time.Minute)
}

func (m *memoryStore) SaveQuestion(ctx context.Context, q *Question) error {
	now := m.stamp()
	q.ID = m.nextID
	q.CreatedAt = now
	q.UpdatedAt = now
	clone := *q
	m.questions[q.ID] = &clone
	return nil
}

func (m *memoryStore) view(q Question) QuestionView {
	v := QuestionView{Question: q}
	v.Asker = m.users.byID[q.UserID]
	if s, ok := m.strategies.byID[q.StrategyID]; ok {
		v.Strategy = s
		v.Owner = m.users.byID[s.OwnerID]
	}
	for _, a := range m.answers {
		if a.QuestionID == q.ID {
			clone := *a
			v.Answer = &clone
			break
		}
	}
	return v
}

func (m *memoryStore) FindQuestionByID(ctx context.Context, id int64) (*QuestionView, error) {
	q, ok := m.questions[id]
	if !ok {
		return nil, fmt.Errorf("%w: question", httpx.ErrNotFound)
	}
	v := m.view(*q)
	return &v, nil
}

func (m *memoryStore) DeleteQuestion(ctx context.Context, id int64) error {
	if _, ok := m.questions[id]; !ok {
		return fmt.Errorf("%w: question", httpx.ErrNotFound)
	}
	delete(m.questions, id)
	for aid, a := range m.answers {
		if a.QuestionID == id {
			delete(m.answers, aid)
		}
	}
	return nil
}

func matches(c Condition, v QuestionView) bool {
	contains := func(field string) bool {
		return strings.Contains(strings.ToLower(field), strings.ToLower(fmt.Sprint(c.Value)))
	}
	switch c.Field {
	case FieldAskerID:
		return v.Question.UserID == c.Value.(int64)
	case FieldOwnerID:
		return v.Strategy != nil && v.Strategy.OwnerID == c.Value.(int64)
	case FieldTitle:
		return contains(v.Question.Title)
	case FieldContent:
		return contains(v.Question.Content)
	case FieldTitleOrContent:
		return contains(v.Question.Title) || contains(v.Question.Content)
	case FieldStrategyName:
		return v.Strategy != nil && contains(v.Strategy.Name)
	case FieldAskerNickname:
		return v.Asker != nil && contains(v.Asker.Nickname)
	case FieldOwnerNickname:
		return v.Owner != nil && contains(v.Owner.Nickname)
	case FieldState:
		return v.Question.State == c.Value.(QnaState)
	default:
		return false
	}
}

func (m *memoryStore) Search(ctx context.Context, conds []Condition, page shared.PageRequest) ([]QuestionView, int, error) {
	var views []QuestionView
	for _, q := range m.questions {
		v := m.view(*q)
		ok := true
		for _, c := range conds {
			if !matches(c, v) {
				ok = false
				break
			}
		}
		if ok {
			views = append(views, v)
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Question.CreatedAt.After(views[j].Question.CreatedAt)
	})
	total := len(views)

	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.PerPage
	if end > total {
		end = total
	}
	return views[start:end], total, nil
}

func (m *memoryStore) SaveAnswer(ctx context.Context, questionID int64, content string) (*Answer, error) {
	q, ok := m.questions[questionID]
	if !ok {
		return nil, fmt.Errorf("%w: question", httpx.ErrNotFound)
	}
	a := &Answer{QuestionID: questionID, Content: content, CreatedAt: m.stamp()}
	a.ID = m.nextID
	m.answers[a.ID] = a
	q.State = StateCompleted
	return a, nil
}

func (m *memoryStore) DeleteAnswer(ctx context.Context, answerID, questionID int64) error {
	a, ok := m.answers[answerID]
	if !ok || a.QuestionID != questionID {
		return fmt.Errorf("%w: answer", httpx.ErrNotFound)
	}
	delete(m.answers, answerID)
	if q, ok := m.questions[questionID]; ok {
		q.State = StateWaiting
	}
	return nil
}

// ============================================================================
// FIXTURE
// ============================================================================

type env struct {
	store      *memoryStore
	users      *memoryUsers
	strategies *memoryStrategies
	svc        *Service
}

const (
	investorLoss  int64 = 1 // nickname "lossmaker"
	investorWin   int64 = 2 // nickname "winner"
	traderMomo    int64 = 3 // owns strategy 10
	traderValue   int64 = 4 // owns strategy 11
	investorAdmin int64 = 5
	superAdmin    int64 = 6

	strategyMomentum int64 = 10
	strategyValue    int64 = 11
)

func newEnv() *env {
	u := &memoryUsers{byID: map[int64]*users.User{
		investorLoss:  {ID: investorLoss, Nickname: "lossmaker", ImageURL: "http://img/1.jpg", Role: users.RoleInvestor},
		investorWin:   {ID: investorWin, Nickname: "winner", ImageURL: "http://img/2.jpg", Role: users.RoleInvestor},
		traderMomo:    {ID: traderMomo, Nickname: "momo", ImageURL: "http://img/3.jpg", Role: users.RoleTrader},
		traderValue:   {ID: traderValue, Nickname: "valueguy", ImageURL: "http://img/4.jpg", Role: users.RoleTrader},
		investorAdmin: {ID: investorAdmin, Nickname: "iadmin", Role: users.RoleInvestorAdmin},
		superAdmin:    {ID: superAdmin, Nickname: "root", Role: users.RoleSuperAdmin},
	}}
	s := &memoryStrategies{byID: map[int64]*strategy.Strategy{
		strategyMomentum: {ID: strategyMomentum, OwnerID: traderMomo, Name: "Momentum"},
		strategyValue:    {ID: strategyValue, OwnerID: traderValue, Name: "Value"},
	}}
	store := newMemoryStore(u, s)
	return &env{store: store, users: u, strategies: s, svc: NewService(store, u, s)}
}

func (e *env) mustAsk(t *testing.T, asker, strategyID int64, title string) *Question {
	t.Helper()
	q, err := e.svc.CreateQuestion(context.Background(), asker, strategyID, QuestionRequest{
		Title:   title,
		Content: "content of " + title,
	})
	require.NoError(t, err)
	return q
}

// checkInvariant asserts state == COMPLETED iff an answer exists, for every
// stored question.
func (e *env) checkInvariant(t *testing.T) {
	t.Helper()
	for id, q := range e.store.questions {
		answered := false
		for _, a := range e.store.answers {
			if a.QuestionID == id {
				answered = true
			}
		}
		if answered {
			require.Equal(t, StateCompleted, q.State, "question %d has answer but state %s", id, q.State)
		} else {
			require.Equal(t, StateWaiting, q.State, "question %d has no answer but state %s", id, q.State)
		}
	}
}

// ============================================================================
// QUESTION LIFECYCLE
// ============================================================================

func TestCreateQuestion(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	q, err := e.svc.CreateQuestion(ctx, investorLoss, strategyMomentum, QuestionRequest{
		Title:   "  about drawdown  ",
		Content: "how deep can it go?",
	})
	require.NoError(t, err)
	assert.Equal(t, StateWaiting, q.State)
	assert.Equal(t, "about drawdown", q.Title)
	e.checkInvariant(t)
}

func TestCreateQuestionValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.svc.CreateQuestion(ctx, investorLoss, strategyMomentum, QuestionRequest{Title: "   ", Content: "x"})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = e.svc.CreateQuestion(ctx, investorLoss, strategyMomentum, QuestionRequest{Title: "x", Content: ""})
	require.ErrorIs(t, err, httpx.ErrValidation)

	// nothing was persisted
	page, err := e.svc.AdminQuestions(ctx, users.RoleSuperAdmin, Filter{}, shared.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.Pagination.Total)
}

func TestCreateQuestionUnresolvedReferences(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.svc.CreateQuestion(ctx, 999, strategyMomentum, QuestionRequest{Title: "t", Content: "c"})
	require.ErrorIs(t, err, httpx.ErrNotFound)

	_, err = e.svc.CreateQuestion(ctx, investorLoss, 999, QuestionRequest{Title: "t", Content: "c"})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteQuestionAccess(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "fees")

	// neither the asker, the owner, nor an admin
	err := e.svc.DeleteQuestion(ctx, strategyMomentum, q.ID, investorWin)
	require.ErrorIs(t, err, httpx.ErrForbidden)
	err = e.svc.DeleteQuestion(ctx, strategyMomentum, q.ID, traderValue)
	require.ErrorIs(t, err, httpx.ErrForbidden)

	// still retrievable after the denials
	_, err = e.svc.QuestionDetail(ctx, q.ID, investorLoss, users.RoleInvestor)
	require.NoError(t, err)

	// the asker may delete
	require.NoError(t, e.svc.DeleteQuestion(ctx, strategyMomentum, q.ID, investorLoss))
	_, err = e.svc.QuestionDetail(ctx, q.ID, investorLoss, users.RoleInvestor)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteQuestionByOwnerAndAdmin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	q1 := e.mustAsk(t, investorLoss, strategyMomentum, "one")
	require.NoError(t, e.svc.DeleteQuestion(ctx, strategyMomentum, q1.ID, traderMomo))

	q2 := e.mustAsk(t, investorLoss, strategyMomentum, "two")
	require.NoError(t, e.svc.DeleteQuestion(ctx, strategyMomentum, q2.ID, superAdmin))

	assert.Empty(t, e.store.questions)
}

func TestDeleteQuestionCascadesAnswer(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "cascade")

	_, err := e.svc.CreateAnswer(ctx, q.ID, traderMomo, AnswerRequest{Content: "sure"})
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteQuestion(ctx, strategyMomentum, q.ID, investorLoss))
	assert.Empty(t, e.store.answers)
	e.checkInvariant(t)
}

// ============================================================================
// ANSWER LIFECYCLE
// ============================================================================

func TestCreateAnswerCompletesQuestion(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "entry rules")

	answer, err := e.svc.CreateAnswer(ctx, q.ID, traderMomo, AnswerRequest{Content: "monthly rebalance"})
	require.NoError(t, err)
	require.NotZero(t, answer.ID)
	e.checkInvariant(t)

	detail, err := e.svc.QuestionDetail(ctx, q.ID, investorLoss, users.RoleInvestor)
	require.NoError(t, err)
	assert.Equal(t, "monthly rebalance", detail.AnswerContent)
	assert.Equal(t, string(StateCompleted), detail.State)
	require.NotNil(t, detail.AnswerCreatedAt)
}

func TestCreateAnswerForbidden(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "risk")

	_, err := e.svc.CreateAnswer(ctx, q.ID, traderValue, AnswerRequest{Content: "not mine"})
	require.ErrorIs(t, err, httpx.ErrForbidden)
	assert.Empty(t, e.store.answers)
	e.checkInvariant(t)
}

func TestCreateAnswerNotFound(t *testing.T) {
	e := newEnv()
	_, err := e.svc.CreateAnswer(context.Background(), 999, traderMomo, AnswerRequest{Content: "x"})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCreateAnswerDuplicate(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "twice")

	_, err := e.svc.CreateAnswer(ctx, q.ID, traderMomo, AnswerRequest{Content: "first"})
	require.NoError(t, err)
	_, err = e.svc.CreateAnswer(ctx, q.ID, traderMomo, AnswerRequest{Content: "second"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
	assert.Len(t, e.store.answers, 1)
}

func TestDeleteAnswerReopensQuestion(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "reopen")
	answer, err := e.svc.CreateAnswer(ctx, q.ID, traderMomo, AnswerRequest{Content: "done"})
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteAnswer(ctx, answer.ID, q.ID, traderMomo))
	e.checkInvariant(t)

	detail, err := e.svc.QuestionDetail(ctx, q.ID, investorLoss, users.RoleInvestor)
	require.NoError(t, err)
	assert.Equal(t, string(StateWaiting), detail.State)
	assert.Equal(t, NoAnswer, detail.AnswerContent)
}

func TestDeleteAnswerIdempotence(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "idempotent")
	answer, err := e.svc.CreateAnswer(ctx, q.ID, traderMomo, AnswerRequest{Content: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteAnswer(ctx, answer.ID, q.ID, traderMomo))
	err = e.svc.DeleteAnswer(ctx, answer.ID, q.ID, traderMomo)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteAnswerForbidden(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "protected")
	answer, err := e.svc.CreateAnswer(ctx, q.ID, traderMomo, AnswerRequest{Content: "keep"})
	require.NoError(t, err)

	err = e.svc.DeleteAnswer(ctx, answer.ID, q.ID, traderValue)
	require.ErrorIs(t, err, httpx.ErrForbidden)
	assert.Len(t, e.store.answers, 1)
	e.checkInvariant(t)
}

// ============================================================================
// LISTINGS
// ============================================================================

func TestTraderListingScopedToOwnStrategies(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mustAsk(t, investorLoss, strategyMomentum, "q1")
	e.mustAsk(t, investorWin, strategyMomentum, "q2")
	e.mustAsk(t, investorLoss, strategyValue, "q3")

	page, err := e.svc.TraderQuestions(ctx, traderMomo, users.RoleTrader, Filter{}, shared.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, page.Pagination.Total)
	for _, row := range page.Questions {
		assert.Equal(t, "Momentum", row.StrategyName)
	}
}

func TestInvestorListingScopedToOwnQuestions(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mustAsk(t, investorLoss, strategyMomentum, "mine")
	e.mustAsk(t, investorWin, strategyMomentum, "theirs")

	page, err := e.svc.InvestorQuestions(ctx, investorLoss, users.RoleInvestor, Filter{}, shared.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Pagination.Total)
	assert.Equal(t, "mine", page.Questions[0].Title)
	// investors see the strategy owner
	assert.Equal(t, "momo", page.Questions[0].Nickname)
}

func TestAdminListingIsGlobal(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mustAsk(t, investorLoss, strategyMomentum, "a")
	e.mustAsk(t, investorWin, strategyValue, "b")

	page, err := e.svc.AdminQuestions(ctx, users.RoleSuperAdmin, Filter{}, shared.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.Total)
}

func TestListingRoleMismatch(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.svc.InvestorQuestions(ctx, traderMomo, users.RoleTrader, Filter{}, shared.PageRequest{})
	require.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = e.svc.TraderQuestions(ctx, investorLoss, users.RoleInvestor, Filter{}, shared.PageRequest{})
	require.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = e.svc.AdminQuestions(ctx, users.RoleTrader, Filter{}, shared.PageRequest{})
	require.ErrorIs(t, err, httpx.ErrForbidden)
}

// A trader searching by investor nickname gets the dimension dropped: both
// inquiries come back regardless of asker nickname. The same search in the
// admin context filters.
func TestInvestorNameSearchGate(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mustAsk(t, investorLoss, strategyMomentum, "from lossmaker")
	e.mustAsk(t, investorWin, strategyMomentum, "from winner")

	f := Filter{Keyword: "loss", Target: TargetInvestorName}

	trader, err := e.svc.TraderQuestions(ctx, traderMomo, users.RoleTrader, f, shared.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, trader.Pagination.Total)

	admin, err := e.svc.AdminQuestions(ctx, users.RoleSuperAdmin, f, shared.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, admin.Pagination.Total)
	assert.Equal(t, "from lossmaker", admin.Questions[0].Title)
}

func TestTraderNameSearchGate(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mustAsk(t, investorLoss, strategyMomentum, "on momentum")
	e.mustAsk(t, investorLoss, strategyValue, "on value")

	f := Filter{Keyword: "momo", Target: TargetTraderName}

	// investors may narrow by the strategy owner's nickname
	investor, err := e.svc.InvestorQuestions(ctx, investorLoss, users.RoleInvestor, f, shared.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, investor.Pagination.Total)
	assert.Equal(t, "on momentum", investor.Questions[0].Title)

	// traders get the dimension dropped
	trader, err := e.svc.TraderQuestions(ctx, traderMomo, users.RoleTrader, f, shared.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, trader.Pagination.Total)
}

func TestListingStateFilterAndKeyword(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q1 := e.mustAsk(t, investorLoss, strategyMomentum, "about fees")
	e.mustAsk(t, investorLoss, strategyMomentum, "about risk")
	_, err := e.svc.CreateAnswer(ctx, q1.ID, traderMomo, AnswerRequest{Content: "low"})
	require.NoError(t, err)

	waiting, err := e.svc.AdminQuestions(ctx, users.RoleSuperAdmin, Filter{State: FilterWaiting}, shared.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, waiting.Pagination.Total)
	assert.Equal(t, "about risk", waiting.Questions[0].Title)

	completed, err := e.svc.AdminQuestions(ctx, users.RoleSuperAdmin, Filter{State: FilterCompleted}, shared.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, completed.Pagination.Total)

	byTitle, err := e.svc.AdminQuestions(ctx, users.RoleSuperAdmin,
		Filter{Keyword: "FEES", Target: TargetTitle}, shared.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, byTitle.Pagination.Total)
	assert.Equal(t, "about fees", byTitle.Questions[0].Title)
}

func TestListingPaginationAndOrder(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		e.mustAsk(t, investorLoss, strategyMomentum, fmt.Sprintf("q%d", i))
	}

	page, err := e.svc.AdminQuestions(ctx, users.RoleSuperAdmin, Filter{},
		shared.PageRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, 5, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	// newest first by default
	assert.Equal(t, "q4", page.Questions[0].Title)

	last, err := e.svc.AdminQuestions(ctx, users.RoleSuperAdmin, Filter{},
		shared.PageRequest{Page: 3, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, last.Questions, 1)
	assert.Equal(t, "q0", last.Questions[0].Title)
}

// ============================================================================
// DETAIL PROJECTIONS
// ============================================================================

func TestQuestionDetailDisclosure(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "who do I see")

	investorView, err := e.svc.QuestionDetail(ctx, q.ID, investorLoss, users.RoleInvestor)
	require.NoError(t, err)
	assert.Equal(t, "momo", investorView.Nickname)

	traderView, err := e.svc.QuestionDetail(ctx, q.ID, traderMomo, users.RoleTrader)
	require.NoError(t, err)
	assert.Equal(t, "lossmaker", traderView.Nickname)

	// denial comes before any disclosure is computed
	_, err = e.svc.QuestionDetail(ctx, q.ID, investorWin, users.RoleInvestor)
	require.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestQuestionDetailPlaceholders(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "placeholders")

	// strategy disappears after the question was asked
	delete(e.strategies.byID, strategyMomentum)

	detail, err := e.svc.AdminQuestionDetail(ctx, q.ID, users.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, NoStrategy, detail.StrategyName)
	assert.Equal(t, NoAnswer, detail.AnswerContent)
	assert.Nil(t, detail.AnswerCreatedAt)
}

func TestAdminQuestionDetail(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	q := e.mustAsk(t, investorLoss, strategyMomentum, "admin view")

	_, err := e.svc.AdminQuestionDetail(ctx, q.ID, users.RoleTrader)
	require.ErrorIs(t, err, httpx.ErrForbidden)

	detail, err := e.svc.AdminQuestionDetail(ctx, q.ID, users.RoleInvestorAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin view", detail.Title)

	_, err = e.svc.AdminQuestionDetail(ctx, 999, users.RoleSuperAdmin)
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}
