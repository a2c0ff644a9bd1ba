package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is an account row.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateUser inserts a new account.
func (s *Store) CreateUser(u *User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, email, hashed_password, created_at)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Email, u.HashedPassword, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail looks up an account by email.
func (s *Store) GetUserByEmail(email string) (*User, error) {
	var u User
	err := s.db.QueryRow(`
		SELECT id, email, hashed_password, created_at
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
