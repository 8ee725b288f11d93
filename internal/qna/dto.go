package qna

import (
	"time"

	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/users"
)

// Placeholder strings for absent collaborator records.
const (
	NoAnswer   = "(no answer yet)"
	NoStrategy = "(no strategy)"
)

type QuestionRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=4000"`
}

type AnswerRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// ListRequest carries the optional search dimensions of a listing call.
type ListRequest struct {
	Keyword string `json:"keyword" validate:"omitempty,max=100"`
	Target  string `json:"target" validate:"omitempty,oneof=TITLE CONTENT TITLE_OR_CONTENT STRATEGY_NAME INVESTOR_NAME TRADER_NAME"`
	State   string `json:"state" validate:"omitempty,oneof=WAITING COMPLETED"`
}

// QuestionRow is one listing entry shaped for the caller's role.
type QuestionRow struct {
	QuestionID      int64     `json:"question_id"`
	Title           string    `json:"title"`
	StrategyName    string    `json:"strategy_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	Nickname        string    `json:"nickname"`
	State           string    `json:"state"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuestionPage is a paginated listing.
type QuestionPage struct {
	Questions  []QuestionRow     `json:"questions"`
	Pagination shared.Pagination `json:"pagination"`
}

// QuestionDetailResponse is the full inquiry projection.
type QuestionDetailResponse struct {
	QuestionID        int64      `json:"question_id"`
	Title             string     `json:"title"`
	QuestionContent   string     `json:"question_content"`
	AnswerContent     string     `json:"answer_content"`
	StrategyName      string     `json:"strategy_name"`
	ProfileImageURL   string     `json:"profile_image_url"`
	Nickname          string     `json:"nickname"`
	State             string     `json:"state"`
	QuestionCreatedAt time.Time  `json:"question_created_at"`
	AnswerCreatedAt   *time.Time `json:"answer_created_at,omitempty"`
}

func strategyName(v QuestionView) string {
	if v.Strategy == nil {
		return NoStrategy
	}
	return v.Strategy.Name
}

func newQuestionRow(v QuestionView, role users.Role) QuestionRow {
	counterpart := DisclosedCounterpart(role, v)
	return QuestionRow{
		QuestionID:      v.Question.ID,
		Title:           v.Question.Title,
		StrategyName:    strategyName(v),
		ProfileImageURL: counterpart.ImageURL,
		Nickname:        counterpart.Nickname,
		State:           string(v.Question.State),
		CreatedAt:       v.Question.CreatedAt,
	}
}

func newQuestionDetailResponse(v QuestionView, role users.Role) QuestionDetailResponse {
	counterpart := DisclosedCounterpart(role, v)
	detail := QuestionDetailResponse{
		QuestionID:        v.Question.ID,
		Title:             v.Question.Title,
		QuestionContent:   v.Question.Content,
		AnswerContent:     NoAnswer,
		StrategyName:      strategyName(v),
		ProfileImageURL:   counterpart.ImageURL,
		Nickname:          counterpart.Nickname,
		State:             string(v.Question.State),
		QuestionCreatedAt: v.Question.CreatedAt,
	}
	if v.Answer != nil {
		detail.AnswerContent = v.Answer.Content
		t := v.Answer.CreatedAt
		detail.AnswerCreatedAt = &t
	}
	return detail
}
