package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Conversion is one completed format conversion.
type Conversion struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	OriginalFilename  string    `json:"original_filename"`
	FormattedFilename string    `json:"formatted_filename"`
	FilePath          string    `json:"-"`
	RowCount          int       `json:"row_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateConversion inserts a history record.
func (s *Store) CreateConversion(c *Conversion) error {
	_, err := s.db.Exec(`
		INSERT INTO conversions (id, user_id, original_filename, formatted_filename, file_path, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.OriginalFilename, c.FormattedFilename, c.FilePath, c.RowCount, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create conversion: %w", err)
	}
	return nil
}

// ListConversions returns the user's conversion history, newest first.
func (s *Store) ListConversions(userID string) ([]Conversion, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, original_filename, formatted_filename, file_path, row_count, created_at
		FROM conversions WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer rows.Close()

	conversions := make([]Conversion, 0)
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.UserID, &c.OriginalFilename, &c.FormattedFilename, &c.FilePath, &c.RowCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}

// GetConversion fetches one conversion owned by the user.
func (s *Store) GetConversion(id, userID string) (*Conversion, error) {
	var c Conversion
	err := s.db.QueryRow(`
		SELECT id, user_id, original_filename, formatted_filename, file_path, row_count, created_at
		FROM conversions WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&c.ID, &c.UserID, &c.OriginalFilename, &c.FormattedFilename, &c.FilePath, &c.RowCount, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion: %w", err)
	}
	return &c, nil
}
