package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Folder groups a user's uploaded files.
type Folder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFolder inserts a folder.
func (s *Store) CreateFolder(f *Folder) error {
	_, err := s.db.Exec(`
		INSERT INTO folders (id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`, f.ID, f.UserID, f.Name, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}
	return nil
}

// ListFolders returns the user's folders, newest first.
func (s *Store) ListFolders(userID string) ([]Folder, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, created_at
		FROM folders WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	folders := make([]Folder, 0)
	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// GetFolder fetches one folder owned by the user.
func (s *Store) GetFolder(id, userID string) (*Folder, error) {
	var f Folder
	err := s.db.QueryRow(`
		SELECT id, user_id, name, created_at
		FROM folders WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return &f, nil
}

// RenameFolder updates a folder's name.
func (s *Store) RenameFolder(id, userID, name string) error {
	res, err := s.db.Exec(`
		UPDATE folders SET name = ? WHERE id = ? AND user_id = ?
	`, name, id, userID)
	if err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFolder removes a folder and detaches its files back to the root.
func (s *Store) DeleteFolder(id, userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM folders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`UPDATE files SET folder_id = NULL WHERE folder_id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("failed to detach files: %w", err)
	}

	return tx.Commit()
}
