package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
	"gopkg.in/yaml.v3"
)

// TicketService manages the ticket catalog and exposes purchase history.
type TicketService struct {
	tickets   domain.TicketRepository
	purchases domain.PurchaseHistoryRepository
}

// NewTicketService creates a new TicketService.
func NewTicketService(tickets domain.TicketRepository, purchases domain.PurchaseHistoryRepository) *TicketService {
	return &TicketService{tickets: tickets, purchases: purchases}
}

// Create validates and stores a ticket.
func (s *TicketService) Create(ctx context.Context, t *domain.Ticket) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("%w: ticket name is required", domain.ErrInvalidInput)
	}
	if t.EntryAt.IsZero() {
		return fmt.Errorf("%w: ticket entry time is required", domain.ErrInvalidInput)
	}
	if t.Price < 0 {
		return fmt.Errorf("%w: ticket price cannot be negative", domain.ErrInvalidInput)
	}
	if t.TotalQuantity < 1 || t.TotalQuantity > domain.MaxTicketQuantity {
		return fmt.Errorf("%w: total quantity must be between 1 and %d", domain.ErrInvalidInput, domain.MaxTicketQuantity)
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

// PurchaseHistory returns the user's purchases, newest first.
func (s *TicketService) PurchaseHistory(ctx context.Context, userID int64) ([]domain.PurchaseHistory, error) {
	return s.purchases.ListByUser(ctx, userID)
}

type catalogFile struct {
	Tickets []struct {
		Name          string `yaml:"name"`
		EntryAt       string `yaml:"entry_at"`
		Price         int    `yaml:"price"`
		TotalQuantity int    `yaml:"total_quantity"`
	} `yaml:"tickets"`
}

// ImportCatalog reads a YAML ticket catalog and creates every ticket whose
// name is not present yet. It returns the number of tickets created.
//
//	tickets:
//	  - name: New Year Concert
//	    entry_at: 2025-12-31T20:00:00+09:00
//	    price: 55000
//	    total_quantity: 250
func (s *TicketService) ImportCatalog(ctx context.Context, r io.Reader) (int, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: decode ticket catalog: %v", domain.ErrInvalidInput, err)
	}

	created := 0
	for i, entry := range file.Tickets {
		if _, err := s.tickets.GetByName(ctx, strings.TrimSpace(entry.Name)); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return created, fmt.Errorf("look up ticket %q: %w", entry.Name, err)
		}

		entryAt, err := time.Parse(time.RFC3339, entry.EntryAt)
		if err != nil {
			return created, fmt.Errorf("%w: ticket %d entry_at must be RFC 3339", domain.ErrInvalidInput, i+1)
		}

		t := &domain.Ticket{
			Name:          entry.Name,
			EntryAt:       entryAt,
			Price:         entry.Price,
			TotalQuantity: entry.TotalQuantity,
		}
		if err := s.Create(ctx, t); err != nil {
			return created, fmt.Errorf("ticket %d: %w", i+1, err)
		}
		created++
	}
	return created, nil
}
