package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/core/auth"
	"taskdeck/internal/domain"
	"taskdeck/internal/transport/http/response"
)

const (
	CtxIdentity = "identity"
	CtxUserID   = "userId"
)

// AuthJWT 校验 bearer token；失败直接短路，下游拿不到半解码的身份
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(CtxIdentity, domain.Identity{
			UserID: claims.UserID,
			Name:   claims.Name,
			Email:  claims.Email,
		})
		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}

// IdentityFrom 取出 AuthJWT 注入的身份
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	ident, ok := v.(domain.Identity)
	return ident, ok
}
