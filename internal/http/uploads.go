package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"inventory-api/internal/storage"
)

const (
	maxImageBytes     = 5 << 20
	multipartOverhead = 64 << 10
)

func (h *Handler) uploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "Image storage is not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes+multipartOverhead)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"msg": "Image must not exceed 5 MiB"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"msg": "Image must not exceed 5 MiB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "File must be an image"})
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.respondError(c, err)
		return
	}

	obj, err := h.images.UploadImage(c.Request.Context(), storage.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: mtype.String(),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	logEntry(c, h.logger).WithField("key", obj.Key).Info("image uploaded")
	c.JSON(http.StatusCreated, gin.H{"key": obj.Key, "url": obj.URL})
}
