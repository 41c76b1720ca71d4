package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
)

type questionRepo struct {
	db *sql.DB
}

func (r *questionRepo) Create(ctx context.Context, q *domain.Question) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (user_id, subject, content, created_at) VALUES (?, ?, ?, ?)`,
		q.UserID, q.Subject, q.Content, now,
	)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get question id: %w", err)
	}
	q.ID = id
	q.CreatedAt = now
	return nil
}

func (r *questionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	q := &domain.Question{}
	var modified sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT q.id, q.user_id, u.name, q.subject, q.content, q.created_at, q.modified_at,
		        (SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id)
		 FROM questions q JOIN users u ON u.id = q.user_id
		 WHERE q.id = ?`, id,
	).Scan(&q.ID, &q.UserID, &q.AuthorName, &q.Subject, &q.Content, &q.CreatedAt, &modified, &q.AnswerCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	q.ModifiedAt = nullTimePtr(modified)

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM question_voter WHERE question_id = ? ORDER BY user_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list question voters: %w", err)
	}
	q.VoterIDs, err = scanIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan question voters: %w", err)
	}
	return q, nil
}

// keywordClause matches the keyword against the question, its author, and
// every answer and answer author. EXISTS keeps each question to one row.
const keywordClause = `WHERE q.subject LIKE ? ESCAPE '\'
	OR q.content LIKE ? ESCAPE '\'
	OR u.name LIKE ? ESCAPE '\'
	OR u.login_id LIKE ? ESCAPE '\'
	OR EXISTS (
		SELECT 1 FROM answers a JOIN users au ON au.id = a.user_id
		WHERE a.question_id = q.id
		  AND (a.content LIKE ? ESCAPE '\' OR au.name LIKE ? ESCAPE '\' OR au.login_id LIKE ? ESCAPE '\')
	)`

func (r *questionRepo) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, int, error) {
	where := ""
	var args []any
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		where = keywordClause
		pattern := likePattern(kw)
		for i := 0; i < 7; i++ {
			args = append(args, pattern)
		}
	}

	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions q JOIN users u ON u.id = q.user_id `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT q.id, q.user_id, u.name, q.subject, q.content, q.created_at, q.modified_at,
		        (SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id)
		 FROM questions q JOIN users u ON u.id = q.user_id `+where+`
		 ORDER BY q.created_at DESC, q.id DESC
		 LIMIT ? OFFSET ?`,
		append(args, filter.Limit, filter.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var modified sql.NullTime
		if err := rows.Scan(&q.ID, &q.UserID, &q.AuthorName, &q.Subject, &q.Content, &q.CreatedAt, &modified, &q.AnswerCount); err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		q.ModifiedAt = nullTimePtr(modified)
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

func (r *questionRepo) Update(ctx context.Context, q *domain.Question) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE questions SET subject = ?, content = ?, modified_at = ? WHERE id = ?`,
		q.Subject, q.Content, q.ModifiedAt, q.ID,
	)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return requireAffected(result)
}

func (r *questionRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return requireAffected(result)
}

func (r *questionRepo) AddVoter(ctx context.Context, questionID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO question_voter (user_id, question_id) VALUES (?, ?)`,
		userID, questionID,
	)
	if err != nil {
		return fmt.Errorf("add question voter: %w", err)
	}
	return nil
}

func likePattern(kw string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(kw) + "%"
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
