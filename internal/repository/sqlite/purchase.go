package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
)

type purchaseRepo struct {
	db *sql.DB
}

func (r *purchaseRepo) Create(ctx context.Context, p *domain.PurchaseHistory) error {
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = time.Now().UTC()
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO purchase_history (user_id, ticket_id, purchased_at, total_price, quantity)
		 VALUES (?, ?, ?, ?, ?)`,
		p.UserID, p.TicketID, p.PurchasedAt, p.TotalPrice, p.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert purchase history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get purchase id: %w", err)
	}
	p.ID = id
	return nil
}

func (r *purchaseRepo) ListByUser(ctx context.Context, userID int64) ([]domain.PurchaseHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.ticket_id, t.name, p.purchased_at, p.total_price, p.quantity
		 FROM purchase_history p JOIN tickets t ON t.id = p.ticket_id
		 WHERE p.user_id = ?
		 ORDER BY p.purchased_at DESC, p.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var history []domain.PurchaseHistory
	for rows.Next() {
		var p domain.PurchaseHistory
		if err := rows.Scan(&p.ID, &p.UserID, &p.TicketID, &p.TicketName, &p.PurchasedAt, &p.TotalPrice, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		history = append(history, p)
	}
	return history, rows.Err()
}
