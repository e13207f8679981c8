package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"motoclub/services/storage"
	"motoclub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedFolders defines permitted destinations for media uploads.
var allowedFolders = map[string]bool{
	"rides":  true,
	"events": true,
	"blogs":  true,
}

// StorageHandler handles cover image uploads for the admin back-office.
type StorageHandler struct {
	Svc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{Svc: svc}
}

func (h *StorageHandler) Upload(c *gin.Context) {
	if h.Svc == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "image uploads are not configured")
		return
	}
	folder := c.Param("folder")
	if !allowedFolders[folder] {
		utils.JSONError(c, http.StatusBadRequest, "invalid folder; allowed values are 'rides', 'events' and 'blogs'")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	defer file.Close()

	base := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	publicID := base + "-" + uuid.New().String()[:8]
	url, err := h.Svc.UploadFile(c.Request.Context(), file, folder, publicID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"url": url, "public_id": folder + "/" + publicID}, "Upload complete")
}

func (h *StorageHandler) Delete(c *gin.Context) {
	if h.Svc == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "image uploads are not configured")
		return
	}
	publicID := c.Query("public_id")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "public_id is required")
		return
	}
	if err := h.Svc.DeleteFile(c.Request.Context(), publicID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, nil, "File deleted")
}
