package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/ticketboard/internal/domain"
)

type ticketRepo struct {
	db *sql.DB
}

func (r *ticketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (name, entry_at, price, total_quantity) VALUES (?, ?, ?, ?)`,
		t.Name, t.EntryAt.UTC(), t.Price, t.TotalQuantity,
	)
	if err != nil {
		if isUniqueConstraintError(err, "tickets.name") {
			return fmt.Errorf("%w: ticket %q already exists", domain.ErrInvalidInput, t.Name)
		}
		return fmt.Errorf("insert ticket: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get ticket id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *ticketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *ticketRepo) GetByName(ctx context.Context, name string) (*domain.Ticket, error) {
	return r.getOne(ctx, "name = ?", name)
}

func (r *ticketRepo) getOne(ctx context.Context, where string, arg any) (*domain.Ticket, error) {
	t := &domain.Ticket{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, entry_at, price, total_quantity FROM tickets WHERE `+where, arg,
	).Scan(&t.ID, &t.Name, &t.EntryAt, &t.Price, &t.TotalQuantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

func (r *ticketRepo) List(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, entry_at, price, total_quantity FROM tickets ORDER BY entry_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.Name, &t.EntryAt, &t.Price, &t.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
