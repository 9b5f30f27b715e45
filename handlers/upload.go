package handlers

import (
	"net/http"
	"path"
	"strings"

	"takeout-api/logger"
	"takeout-api/storage"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 << 20

var imageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadHandler struct {
	uploader storage.Uploader
	logger   *logger.Logger
}

func NewUploadHandler(uploader storage.Uploader, log *logger.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, logger: log.WithComponent("upload_handler")}
}

// Image stores a dish or combo picture and returns its URL
func (h *UploadHandler) Image(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds 5MB"})
		return
	}
	if !imageTypes[strings.ToLower(path.Ext(file.Filename))] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only jpg, png and webp images are accepted"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer src.Close()

	key := storage.ObjectKey("images", file.Filename)
	url, err := h.uploader.Upload(c.Request.Context(), key, src, file.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("Image upload failed", "key", key, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to store image"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
