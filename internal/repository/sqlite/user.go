package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/ticketboard/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (login_id, name, email, password_hash, address, phone, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.LoginID, user.Name, user.Email, user.PasswordHash, user.Address, user.Phone, now,
	)
	if err != nil {
		if isUniqueConstraintError(err, "users.email") {
			return domain.ErrDuplicateEmail
		}
		if isUniqueConstraintError(err, "users.login_id") {
			return domain.ErrDuplicateLoginID
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByLoginID(ctx context.Context, loginID string) (*domain.User, error) {
	return r.getOne(ctx, "login_id = ?", loginID)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, login_id, name, email, password_hash, address, phone, created_at
		 FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.LoginID, &user.Name, &user.Email, &user.PasswordHash, &user.Address, &user.Phone, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}
