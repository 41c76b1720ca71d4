package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
)

func TestTicketRepository_CreateGetList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	entry := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)

	ticket := &domain.Ticket{Name: "New Year Concert", EntryAt: entry, Price: 50000, TotalQuantity: 250}
	if err := db.Tickets().Create(ctx, ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := db.Tickets().GetByName(ctx, "New Year Concert")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if got.ID != ticket.ID || !got.EntryAt.Equal(entry) {
		t.Fatalf("unexpected ticket %+v", got)
	}

	list, err := db.Tickets().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(list))
	}

	if _, err := db.Tickets().GetByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTicketRepository_Create_QuantityCeiling(t *testing.T) {
	db := newTestDB(t)

	err := db.Tickets().Create(context.Background(), &domain.Ticket{
		Name: "Stadium", EntryAt: time.Now(), Price: 1, TotalQuantity: 251,
	})
	if err == nil {
		t.Fatal("expected the schema to reject total_quantity above 250")
	}
}

func TestPurchaseHistoryRepository_AppendAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	buyer := seedUser(t, db, "buyer")

	ticket := &domain.Ticket{Name: "Matinee", EntryAt: time.Now().Add(24 * time.Hour), Price: 10000, TotalQuantity: 100}
	if err := db.Tickets().Create(ctx, ticket); err != nil {
		t.Fatalf("Create ticket: %v", err)
	}

	p := &domain.PurchaseHistory{UserID: buyer.ID, TicketID: ticket.ID, TotalPrice: 20000, Quantity: 2}
	if err := db.Purchases().Create(ctx, p); err != nil {
		t.Fatalf("Create purchase: %v", err)
	}
	if p.PurchasedAt.IsZero() {
		t.Fatal("expected purchase time to default to now")
	}

	history, err := db.Purchases().ListByUser(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 purchase, got %d", len(history))
	}
	if history[0].TicketName != "Matinee" || history[0].Quantity != 2 {
		t.Fatalf("unexpected purchase %+v", history[0])
	}
}
