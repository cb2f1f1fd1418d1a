package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskdeck/internal/core/auth"
	"taskdeck/internal/core/cache"
	"taskdeck/internal/core/config"
	"taskdeck/internal/repo"
	"taskdeck/internal/service"
	"taskdeck/internal/transport/http/handler"
	mdw "taskdeck/internal/transport/http/middleware"
)

// NewAPIEngine 组装唯一的 API 端：中间件栈 + /auth + /todo
func NewAPIEngine(l *zap.Logger, db *gorm.DB, ch *cache.Cache, jwter *auth.JWTer, cfg *config.Config) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userRepo := repo.NewUserRepo(db)
	todoRepo := repo.NewTodoRepo(db)
	authSvc := service.NewAuthService(userRepo, jwter)
	todoSvc := service.NewTodoService(todoRepo)

	authH := handler.NewAuthHandler(authSvc)
	todoH := handler.NewTodoHandler(todoSvc, ch, time.Duration(cfg.Cache.ViewTTLSec)*time.Second)

	authG := r.Group("/auth")
	authG.POST("/register", authH.Register)
	authG.POST("/login", authH.Login)
	authG.POST("/reset", mdw.AuthJWT(jwter), authH.Reset)

	todoG := r.Group("/todo")
	// view 是公开路径，故意不挂鉴权
	todoG.GET("/view/:id", todoH.View)

	protected := todoG.Group("", mdw.AuthJWT(jwter))
	protected.POST("/create", todoH.Create)
	protected.GET("/getAll", todoH.GetAll)
	protected.GET("/get/:id", todoH.Get)
	protected.PUT("/edit/:id", todoH.Edit)
	protected.PATCH("/move/:id", todoH.Move)
	protected.DELETE("/delete/:id", todoH.Delete)
	protected.GET("/analytics", todoH.Analytics)

	return r
}
