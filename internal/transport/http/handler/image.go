package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/askarbek/carvault/internal/usecase"
	"github.com/gin-gonic/gin"
)

type imageUsecaser interface {
	PresignUpload(ctx context.Context, userID string) (*usecase.PresignResult, error)
}

type ImageHandler struct {
	uc     imageUsecaser
	logger *slog.Logger
}

func NewImageHandler(uc imageUsecaser, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{uc: uc, logger: logger.With("component", "image_handler")}
}

// POST /api/images/uploads
// The client PUTs the image bytes to upload_url, then references url in the
// car payload's img array.
func (h *ImageHandler) PresignUpload(c *gin.Context) {
	result, err := h.uc.PresignUpload(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "presign upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"upload_url": result.UploadURL,
		"url":        result.PublicURL,
		"key":        result.Key,
	})
}
