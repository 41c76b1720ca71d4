package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
)

type answerRepo struct {
	db *sql.DB
}

func (r *answerRepo) Create(ctx context.Context, a *domain.Answer) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO answers (question_id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
		a.QuestionID, a.UserID, a.Content, now,
	)
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get answer id: %w", err)
	}
	a.ID = id
	a.CreatedAt = now
	return nil
}

func (r *answerRepo) GetByID(ctx context.Context, id int64) (*domain.Answer, error) {
	a := &domain.Answer{}
	var modified sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT a.id, a.question_id, a.user_id, u.name, a.content, a.created_at, a.modified_at
		 FROM answers a JOIN users u ON u.id = a.user_id
		 WHERE a.id = ?`, id,
	).Scan(&a.ID, &a.QuestionID, &a.UserID, &a.AuthorName, &a.Content, &a.CreatedAt, &modified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get answer: %w", err)
	}
	a.ModifiedAt = nullTimePtr(modified)

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM answer_voter WHERE answer_id = ? ORDER BY user_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list answer voters: %w", err)
	}
	a.VoterIDs, err = scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan answer voters: %w", err)
	}
	return a, nil
}

func (r *answerRepo) ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	answers, err := r.listRows(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return answers, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT av.answer_id, av.user_id
		 FROM answer_voter av JOIN answers a ON a.id = av.answer_id
		 WHERE a.question_id = ?
		 ORDER BY av.user_id`, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answer voters: %w", err)
	}
	defer rows.Close()

	index := make(map[int64]int, len(answers))
	for i := range answers {
		index[answers[i].ID] = i
	}
	for rows.Next() {
		var answerID, userID int64
		if err := rows.Scan(&answerID, &userID); err != nil {
			return nil, fmt.Errorf("scan answer voter: %w", err)
		}
		if i, ok := index[answerID]; ok {
			answers[i].VoterIDs = append(answers[i].VoterIDs, userID)
		}
	}
	return answers, rows.Err()
}

// listRows reads the answers themselves. The rows are closed before voters
// are loaded because the pool holds a single connection.
func (r *answerRepo) listRows(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.question_id, a.user_id, u.name, a.content, a.created_at, a.modified_at
		 FROM answers a JOIN users u ON u.id = a.user_id
		 WHERE a.question_id = ?
		 ORDER BY a.created_at, a.id`, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var a domain.Answer
		var modified sql.NullTime
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.UserID, &a.AuthorName, &a.Content, &a.CreatedAt, &modified); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.ModifiedAt = nullTimePtr(modified)
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *answerRepo) Update(ctx context.Context, a *domain.Answer) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE answers SET content = ?, modified_at = ? WHERE id = ?`,
		a.Content, a.ModifiedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update answer: %w", err)
	}
	return requireAffected(result)
}

func (r *answerRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM answers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}
	return requireAffected(result)
}

func (r *answerRepo) AddVoter(ctx context.Context, answerID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO answer_voter (user_id, answer_id) VALUES (?, ?)`,
		userID, answerID,
	)
	if err != nil {
		return fmt.Errorf("add answer voter: %w", err)
	}
	return nil
}
