package handler

import (
	"errors"
	"net/http"

	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 500 << 20

type UploadHandler struct {
	svc *service.UploadService
	log *zap.Logger
}

func NewUploadHandler(svc *service.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, log: log}
}

// Upload godoc
// @Summary      Upload a media file
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        bucket formData string true "Target bucket" Enums(workshop-media, workshop-thumbnails, content-media, content-thumbnails)
// @Param        file   formData file   true "File"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /admin/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	url, err := h.svc.Upload(c.Request.Context(), c.PostForm("bucket"), file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBucket) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "upload failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
