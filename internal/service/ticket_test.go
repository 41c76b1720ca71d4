package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
	"github.com/msomdec/ticketboard/internal/service"
)

func TestTicketService_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	tickets := service.NewTicketService(db.Tickets(), db.Purchases())
	ctx := context.Background()
	entry := time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)

	bad := []domain.Ticket{
		{Name: "", EntryAt: entry, Price: 1, TotalQuantity: 1},
		{Name: "No time", Price: 1, TotalQuantity: 1},
		{Name: "Negative", EntryAt: entry, Price: -1, TotalQuantity: 1},
		{Name: "Empty", EntryAt: entry, Price: 1, TotalQuantity: 0},
		{Name: "Huge", EntryAt: entry, Price: 1, TotalQuantity: 251},
	}
	for _, tk := range bad {
		if err := tickets.Create(ctx, &tk); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("ticket %q: expected ErrInvalidInput, got %v", tk.Name, err)
		}
	}

	ok := &domain.Ticket{Name: "Full House", EntryAt: entry, Price: 0, TotalQuantity: 250}
	if err := tickets.Create(ctx, ok); err != nil {
		t.Fatalf("Create at ceiling: %v", err)
	}
}

const testCatalog = `
tickets:
  - name: New Year Concert
    entry_at: 2025-12-31T20:00:00+09:00
    price: 55000
    total_quantity: 250
  - name: Jazz Night
    entry_at: 2025-06-01T19:30:00+09:00
    price: 30000
    total_quantity: 80
`

func TestTicketService_ImportCatalog_Idempotent(t *testing.T) {
	db := newTestDB(t)
	tickets := service.NewTicketService(db.Tickets(), db.Purchases())
	ctx := context.Background()

	created, err := tickets.ImportCatalog(ctx, strings.NewReader(testCatalog))
	if err != nil {
		t.Fatalf("ImportCatalog: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 tickets created, got %d", created)
	}

	created, err = tickets.ImportCatalog(ctx, strings.NewReader(testCatalog))
	if err != nil {
		t.Fatalf("second ImportCatalog: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected re-import to create nothing, got %d", created)
	}

	list, err := tickets.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Jazz Night" {
		t.Fatalf("expected two tickets ordered by entry time, got %+v", list)
	}
}

func TestTicketService_ImportCatalog_RejectsOverCapacity(t *testing.T) {
	db := newTestDB(t)
	tickets := service.NewTicketService(db.Tickets(), db.Purchases())

	catalog := `
tickets:
  - name: Stadium
    entry_at: 2025-07-01T18:00:00Z
    price: 99000
    total_quantity: 5000
`
	if _, err := tickets.ImportCatalog(context.Background(), strings.NewReader(catalog)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTicketService_PurchaseHistory(t *testing.T) {
	db := newTestDB(t)
	tickets := service.NewTicketService(db.Tickets(), db.Purchases())
	ctx := context.Background()
	buyer := seedUserForTest(t, db, "buyer")

	tk := &domain.Ticket{Name: "Opera", EntryAt: time.Now().Add(48 * time.Hour), Price: 70000, TotalQuantity: 100}
	if err := tickets.Create(ctx, tk); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Rows are written by the queue consumer; simulate one.
	if err := db.Purchases().Create(ctx, &domain.PurchaseHistory{UserID: buyer, TicketID: tk.ID, TotalPrice: 140000, Quantity: 2}); err != nil {
		t.Fatalf("record purchase: %v", err)
	}

	history, err := tickets.PurchaseHistory(ctx, buyer)
	if err != nil {
		t.Fatalf("PurchaseHistory: %v", err)
	}
	if len(history) != 1 || history[0].TicketName != "Opera" {
		t.Fatalf("unexpected history %+v", history)
	}
}
