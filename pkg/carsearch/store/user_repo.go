package store

import (
	"context"
	"fmt"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

const (
	sqlInsertUser = `
		INSERT INTO users (username, password_hash, first_name, last_name)
		VALUES (?, ?, ?, ?)`

	sqlSelectUser = `
		SELECT id, username, password_hash, first_name, last_name, created_at
		FROM users`

	sqlDeleteUser = `DELETE FROM users WHERE id = ?`
)

// CreateUser inserts a new account. Returns ErrDuplicate when the username
// is taken.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, firstName, lastName string) (*dal.User, error) {
	res, err := s.db.ExecContext(ctx, sqlInsertUser, username, passwordHash, firstName, lastName)
	if err != nil {
		return nil, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted user id: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

// GetUserByID fetches one user or ErrNotFound.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*dal.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, sqlSelectUser+` WHERE id = ?`, id))
}

// GetUserByUsername fetches one user or ErrNotFound.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*dal.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, sqlSelectUser+` WHERE username = ?`, username))
}

// DeleteUser removes the account. Returns ErrNotFound when no row matched.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteUser, id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanUser(row rowScanner) (*dal.User, error) {
	var u dal.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}
