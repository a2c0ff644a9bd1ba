package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/mapper"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/store"
	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/tabular"
)

// resolveMapping returns the caller's mapping override, or the classifier's
// proposal when the form field is absent. An override replaces the proposal
// wholesale.
func resolveMapping(c *gin.Context, upload cachedUpload) (mapper.Mapping, error) {
	raw := c.PostForm("column_mappings")
	if raw == "" {
		return upload.mapping, nil
	}

	var m mapper.Mapping
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return mapper.Mapping{}, fmt.Errorf("invalid column_mappings: %w", err)
	}
	return m, nil
}

// Preview formats the cached table with the given mapping without persisting
// anything.
// POST /api/preview
func (h *Handler) Preview(c *gin.Context) {
	user := currentUser(c)

	fileID := c.PostForm("file_id")
	upload, ok := h.uploads.get(fileID, user.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found or expired"})
		return
	}

	mapping, err := resolveMapping(c, upload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preview := &tabular.Table{
		Columns: upload.table.Columns,
		Rows:    upload.table.Head(h.previewRows),
	}

	c.JSON(http.StatusOK, gin.H{
		"formatted_data": mapper.Format(preview, mapping),
	})
}

type convertResponse struct {
	FormattedData     []mapper.OutputRow `json:"formatted_data"`
	FormattedFilename string             `json:"formatted_filename"`
	ConversionID      string             `json:"conversion_id"`
}

// Convert formats the full cached table, writes the CSV into the export
// directory and records the conversion.
// POST /api/convert
func (h *Handler) Convert(c *gin.Context) {
	user := currentUser(c)

	fileID := c.PostForm("file_id")
	upload, ok := h.uploads.get(fileID, user.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found or expired"})
		return
	}

	mapping, err := resolveMapping(c, upload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := mapper.Format(upload.table, mapping)

	formattedFilename := normalizeOutputFilename(c.PostForm("formatted_filename"), upload.filename)
	outputPath := filepath.Join(h.exportDir, uuid.New().String()+"_"+formattedFilename)

	out, err := os.Create(outputPath)
	if err != nil {
		h.log.Error().Err(err).Str("path", outputPath).Msg("create export file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write converted file"})
		return
	}
	defer out.Close()

	if err := mapper.WriteCSV(out, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write converted file"})
		return
	}

	conversion := &store.Conversion{
		ID:                uuid.New().String(),
		UserID:            user.ID,
		OriginalFilename:  upload.filename,
		FormattedFilename: formattedFilename,
		FilePath:          outputPath,
		RowCount:          len(rows),
		CreatedAt:         time.Now().UTC(),
	}
	if err := h.store.CreateConversion(conversion); err != nil {
		h.log.Error().Err(err).Msg("record conversion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record conversion"})
		return
	}

	h.log.Info().
		Str("user", user.Email).
		Str("file", upload.filename).
		Int("rows", len(rows)).
		Msg("file converted")

	c.JSON(http.StatusOK, convertResponse{
		FormattedData:     rows,
		FormattedFilename: formattedFilename,
		ConversionID:      conversion.ID,
	})
}

// ListConversions returns the user's conversion history, newest first.
// GET /api/conversions
func (h *Handler) ListConversions(c *gin.Context) {
	user := currentUser(c)

	conversions, err := h.store.ListConversions(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, conversions)
}

// Download streams a converted CSV back to its owner.
// GET /api/download/:id
func (h *Handler) Download(c *gin.Context) {
	user := currentUser(c)

	conversion, err := h.store.GetConversion(c.Param("id"), user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversion not found"})
		return
	}

	c.FileAttachment(conversion.FilePath, conversion.FormattedFilename)
}

// normalizeOutputFilename falls back to "<original>_formatted.csv" and always
// enforces a .csv suffix. Path separators are stripped so the name stays
// inside the export directory.
func normalizeOutputFilename(requested, originalFilename string) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		base := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
		name = base + "_formatted.csv"
	}
	name = filepath.Base(name)
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name
}
