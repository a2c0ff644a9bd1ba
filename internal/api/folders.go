package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sicapo-dev/CSV-to-Xero-Converter/internal/store"
)

// CreateFolder creates a folder for the authenticated user.
// POST /api/folders
func (h *Handler) CreateFolder(c *gin.Context) {
	user := currentUser(c)

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder name is required"})
		return
	}

	folder := &store.Folder{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateFolder(folder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, folder)
}

// ListFolders lists the user's folders.
// GET /api/folders
func (h *Handler) ListFolders(c *gin.Context) {
	user := currentUser(c)

	folders, err := h.store.ListFolders(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, folders)
}

// ListFolderFiles lists the uploads inside one folder.
// GET /api/folders/:id/files
func (h *Handler) ListFolderFiles(c *gin.Context) {
	user := currentUser(c)
	folderID := c.Param("id")

	if _, err := h.store.GetFolder(folderID, user.ID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "folder not found"})
		return
	}

	files, err := h.store.ListFilesInFolder(user.ID, folderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, files)
}

// RenameFolder updates a folder's name.
// PUT /api/folders/:id
func (h *Handler) RenameFolder(c *gin.Context) {
	user := currentUser(c)

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder name is required"})
		return
	}

	if err := h.store.RenameFolder(c.Param("id"), user.ID, name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "folder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "name": name})
}

// DeleteFolder removes a folder; its files move back to the root.
// DELETE /api/folders/:id
func (h *Handler) DeleteFolder(c *gin.Context) {
	user := currentUser(c)

	if err := h.store.DeleteFolder(c.Param("id"), user.ID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "folder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// MoveFile reassigns an upload to another folder. The literal target "root"
// (or an empty one) moves it out of any folder.
// POST /api/files/move
func (h *Handler) MoveFile(c *gin.Context) {
	user := currentUser(c)

	fileID := c.PostForm("file_id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_id is required"})
		return
	}

	targetID := c.PostForm("target_folder_id")
	if targetID == "root" {
		targetID = ""
	}
	if targetID != "" {
		if _, err := h.store.GetFolder(targetID, user.ID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "target folder not found"})
			return
		}
	}

	if err := h.store.MoveFile(fileID, user.ID, targetID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"file_id": fileID, "folder_id": targetID})
}
