package store

import (
	"database/sql"
	"fmt"
	"time"
)

// File records an uploaded source spreadsheet. FolderID is empty for files at
// the root.
type File struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FolderID   string    `json:"folder_id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// CreateFile inserts an upload record.
func (s *Store) CreateFile(f *File) error {
	_, err := s.db.Exec(`
		INSERT INTO files (id, user_id, folder_id, filename, file_type, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, f.ID, f.UserID, nullable(f.FolderID), f.Filename, f.FileType, f.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}

// ListFilesInFolder returns the user's files in one folder; an empty folderID
// means the root.
func (s *Store) ListFilesInFolder(userID, folderID string) ([]File, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if folderID == "" {
		rows, err = s.db.Query(`
			SELECT id, user_id, folder_id, filename, file_type, uploaded_at
			FROM files WHERE user_id = ? AND folder_id IS NULL
			ORDER BY uploaded_at DESC
		`, userID)
	} else {
		rows, err = s.db.Query(`
			SELECT id, user_id, folder_id, filename, file_type, uploaded_at
			FROM files WHERE user_id = ? AND folder_id = ?
			ORDER BY uploaded_at DESC
		`, userID, folderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

// MoveFile reassigns a file to another folder; an empty folderID moves it to
// the root.
func (s *Store) MoveFile(id, userID, folderID string) error {
	res, err := s.db.Exec(`
		UPDATE files SET folder_id = ? WHERE id = ? AND user_id = ?
	`, nullable(folderID), id, userID)
	if err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanFiles(rows *sql.Rows) ([]File, error) {
	files := make([]File, 0)
	for rows.Next() {
		var (
			f        File
			folderID sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.UserID, &folderID, &f.Filename, &f.FileType, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		f.FolderID = folderID.String
		files = append(files, f)
	}
	return files, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
