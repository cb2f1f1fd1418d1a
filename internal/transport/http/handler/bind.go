package handler

import (
	"errors"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"taskdeck/internal/transport/http/response"
)

// bindJSON 绑定失败时按 {errors: {field: message}} 返回字段明细
func bindJSON(c *gin.Context, out any) bool {
	err := c.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		fields := make(map[string]string, len(verr))
		for _, fe := range verr {
			fields[jsonFieldName(fe.Field())] = validationMessage(fe.Tag())
		}
		response.Fields(c, fields)
		return false
	}

	response.Message(c, 400, "invalid request body")
	return false
}

func validationMessage(rule string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	}
	return "is invalid"
}

// 请求结构体的 json tag 都是首字母小写的字段名
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
