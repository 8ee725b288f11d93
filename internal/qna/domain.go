// Package qna implements the question/answer subsystem: inquiry lifecycle,
// role-scoped access policy and the search condition compiler.
package qna

import (
	"time"

	"github.com/investmetic/investmetic/internal/strategy"
	"github.com/investmetic/investmetic/internal/users"
)

// QnaState is the inquiry lifecycle state. An inquiry starts WAITING and
// becomes COMPLETED when the strategy owner answers; deleting the answer
// moves it back to WAITING so the state always mirrors answer presence.
type QnaState string

const (
	StateWaiting   QnaState = "WAITING"
	StateCompleted QnaState = "COMPLETED"
)

// Question is an inquiry submitted by an investor against a strategy.
type Question struct {
	ID         int64
	UserID     int64
	StrategyID int64
	Title      string
	Content    string
	State      QnaState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Answer is the single reply authored by the strategy owner.
type Answer struct {
	ID         int64
	QuestionID int64
	Content    string
	CreatedAt  time.Time
}

// QuestionView is a question hydrated with its collaborators. Asker,
// Strategy, Owner and Answer may each be nil when the referenced record is
// missing; the access policy and projections handle every combination.
type QuestionView struct {
	Question Question
	Asker    *users.User
	Strategy *strategy.Strategy
	Owner    *users.User
	Answer   *Answer
}

// Answered reports whether the view carries an answer.
func (v QuestionView) Answered() bool {
	return v.Answer != nil
}
