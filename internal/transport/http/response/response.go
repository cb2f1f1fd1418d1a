package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/domain"
)

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// Fields 字段级校验失败：{errors: {field: message}}
func Fields(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
}

func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// FromError 把业务错误映射到线上契约；未知错误一律 500，不泄露内部细节
func FromError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		Fields(c, ve.Fields)
	case errors.Is(err, domain.ErrNotFound):
		Message(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrVersionConflict):
		Message(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNoUpdates),
		errors.Is(err, domain.ErrSamePassword),
		errors.Is(err, domain.ErrInvalidDueDate):
		Message(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err) // 交给访问日志
		Message(c, http.StatusInternalServerError, "Internal server error")
	}
}
