package api

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/mapper"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/store"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/tabular"
)

type uploadResponse struct {
	FileID          string              `json:"file_id"`
	FileType        string              `json:"file_type"`
	OriginalColumns []string            `json:"original_columns"`
	ColumnMapping   mapper.Mapping      `json:"column_mapping"`
	OriginalData    []map[string]string `json:"original_data"`
	FormattedData   []mapper.OutputRow  `json:"formatted_data"`
}

// Upload parses a CSV/XLSX file, proposes a column mapping and returns a
// preview of both the original and the auto-formatted data.
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	user := currentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no upload file found"})
		return
	}

	folderID := c.PostForm("folder_id")
	if folderID != "" {
		if _, err := h.store.GetFolder(folderID, user.ID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "folder not found"})
			return
		}
	}

	resp, err := h.processUpload(user, fileHeader, folderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

type bulkUploadResult struct {
	Filename string `json:"filename"`
	FileID   string `json:"file_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BulkUpload processes several files in one request; per-file failures do not
// abort the rest.
// POST /api/bulk-upload
func (h *Handler) BulkUpload(c *gin.Context) {
	user := currentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no upload files found"})
		return
	}

	folderID := c.PostForm("folder_id")
	if folderID != "" {
		if _, err := h.store.GetFolder(folderID, user.ID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "folder not found"})
			return
		}
	}

	results := make([]bulkUploadResult, 0, len(files))
	for _, fh := range files {
		resp, err := h.processUpload(user, fh, folderID)
		if err != nil {
			results = append(results, bulkUploadResult{Filename: fh.Filename, Error: err.Error()})
			continue
		}
		results = append(results, bulkUploadResult{Filename: fh.Filename, FileID: resp.FileID})
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) processUpload(user *store.User, fileHeader *multipart.FileHeader, folderID string) (*uploadResponse, error) {
	fileType, err := fileTypeOf(fileHeader.Filename)
	if err != nil {
		return nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	table, err := tabular.Read(f, fileHeader.Filename)
	if err != nil {
		return nil, err
	}

	mapping := mapper.Classify(table)

	fileID := uuid.New().String()
	h.uploads.put(fileID, cachedUpload{
		userID:   user.ID,
		filename: fileHeader.Filename,
		fileType: fileType,
		table:    table,
		mapping:  mapping,
	})

	record := &store.File{
		ID:         fileID,
		UserID:     user.ID,
		FolderID:   folderID,
		Filename:   fileHeader.Filename,
		FileType:   fileType,
		UploadedAt: time.Now().UTC(),
	}
	if err := h.store.CreateFile(record); err != nil {
		h.log.Error().Err(err).Str("file", fileHeader.Filename).Msg("record upload")
	}

	head := table.Head(h.previewRows)
	preview := &tabular.Table{Columns: table.Columns, Rows: head}

	h.log.Info().
		Str("user", user.Email).
		Str("file", fileHeader.Filename).
		Int("rows", table.RowCount()).
		Msg("file uploaded")

	return &uploadResponse{
		FileID:          fileID,
		FileType:        fileType,
		OriginalColumns: table.Columns,
		ColumnMapping:   mapping,
		OriginalData:    head,
		FormattedData:   mapper.Format(preview, mapping),
	}, nil
}

// fileTypeOf validates the extension; only CSV and XLSX files are supported.
func fileTypeOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "csv", nil
	case ".xlsx":
		return "xlsx", nil
	default:
		return "", fmt.Errorf("only CSV and XLSX files are supported")
	}
}
