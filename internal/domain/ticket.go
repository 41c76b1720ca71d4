package domain

import (
	"context"
	"time"
)

// MaxTicketQuantity caps Ticket.TotalQuantity at creation.
const MaxTicketQuantity = 250

// Ticket is a purchasable entry to an event.
type Ticket struct {
	ID            int64
	Name          string
	EntryAt       time.Time
	Price         int
	TotalQuantity int
}

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id int64) (*Ticket, error)
	GetByName(ctx context.Context, name string) (*Ticket, error)
	List(ctx context.Context) ([]Ticket, error)
}
