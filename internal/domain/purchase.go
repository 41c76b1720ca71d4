package domain

import (
	"context"
	"time"
)

// PurchaseHistory records an accepted reservation. Rows are written by the
// downstream queue consumer and never modified afterwards.
type PurchaseHistory struct {
	ID          int64
	UserID      int64
	TicketID    int64
	TicketName  string
	PurchasedAt time.Time
	TotalPrice  int
	Quantity    int
}

// PurchaseHistoryRepository is append-only: there is no update or delete.
type PurchaseHistoryRepository interface {
	Create(ctx context.Context, p *PurchaseHistory) error
	ListByUser(ctx context.Context, userID int64) ([]PurchaseHistory, error)
}
