package handler

import (
	"errors"
	"net/http"
	"strconv"

	"z2b/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func requestMeta(c *gin.Context) service.RequestMeta {
	return service.RequestMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// abortAccessDenied writes the member-facing message for a blocked account.
func abortAccessDenied(c *gin.Context, err error) bool {
	var denied *service.AccessDeniedError
	if !errors.As(err, &denied) {
		return false
	}
	c.JSON(http.StatusForbidden, gin.H{"error": denied.Result.Message, "status": denied.Result.Status})
	return true
}

func internalError(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
