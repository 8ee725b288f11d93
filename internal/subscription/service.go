package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/investmetic/investmetic/internal/platform/httpx"
	"github.com/investmetic/investmetic/internal/shared"
	"github.com/investmetic/investmetic/internal/strategy"
	"github.com/investmetic/investmetic/internal/users"
)

// StrategyDirectory resolves strategy references.
type StrategyDirectory interface {
	FindByID(ctx context.Context, id int64) (*strategy.Strategy, error)
}

// Service orchestrates subscription toggling and listings.
type Service struct {
	repo       RepositoryPort
	strategies StrategyDirectory
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, strategies StrategyDirectory) *Service {
	return &Service{repo: repo, strategies: strategies}
}

// Toggle subscribes the caller to the strategy, or unsubscribes when a
// subscription already exists. Traders cannot follow their own strategy.
func (s *Service) Toggle(ctx context.Context, strategyID, userID int64, role users.Role) (*ToggleResponse, error) {
	if !role.IsInvestorClass() {
		return nil, httpx.ErrForbidden
	}
	st, err := s.strategies.FindByID(ctx, strategyID)
	if err != nil {
		return nil, fmt.Errorf("resolve strategy: %w", err)
	}
	if st.OwnerID == userID {
		return nil, httpx.ErrForbidden
	}

	subscribed, err := s.repo.Toggle(ctx, strategyID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle subscription: %w", err)
	}
	return &ToggleResponse{StrategyID: strategyID, Subscribed: subscribed}, nil
}

// ListByUser returns the caller's subscriptions, newest first.
func (s *Service) ListByUser(ctx context.Context, userID int64, page shared.PageRequest) (*PageResponse, error) {
	page = page.Normalize()
	items, total, err := s.repo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	rows := make([]RowResponse, 0, len(items))
	for _, it := range items {
		rows = append(rows, RowResponse{
			StrategyID:      it.StrategyID,
			StrategyName:    it.StrategyName,
			SubscriberCount: it.SubscriberCount,
			SubscribedAt:    it.SubscribedAt,
		})
	}
	return &PageResponse{
		Subscriptions: rows,
		Pagination:    shared.NewPagination(page.Page, page.PerPage, total),
	}, nil
}

// ToggleResponse reports the state after a toggle.
type ToggleResponse struct {
	StrategyID int64 `json:"strategy_id"`
	Subscribed bool  `json:"subscribed"`
}

type RowResponse struct {
	StrategyID      int64     `json:"strategy_id"`
	StrategyName    string    `json:"strategy_name"`
	SubscriberCount int       `json:"subscriber_count"`
	SubscribedAt    time.Time `json:"subscribed_at"`
}

type PageResponse struct {
	Subscriptions []RowResponse     `json:"subscriptions"`
	Pagination    shared.Pagination `json:"pagination"`
}
