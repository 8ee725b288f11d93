package subscription

import "time"

// Subscription links an investor to a strategy they follow.
type Subscription struct {
	ID         int64
	UserID     int64
	StrategyID int64
	CreatedAt  time.Time
}
