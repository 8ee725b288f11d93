// Package strategy exposes the strategy aggregate to the rest of the
// backend. Inquiries and subscriptions only need the owning trader and the
// display name; everything else about a strategy stays opaque here.
package strategy

import "time"

// Strategy is an investment strategy registered by a trader.
type Strategy struct {
	ID              int64
	OwnerID         int64
	Name            string
	SubscriberCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
