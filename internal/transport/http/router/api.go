package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-user-account-api/internal/core/auth"
	"go-user-account-api/internal/core/session"
	"go-user-account-api/internal/transport/http/handler"
	mdw "go-user-account-api/internal/transport/http/middleware"
)

type Deps struct {
	Log        *zap.Logger
	AuthH      *handler.AuthHandler
	UserH      *handler.UserHandler
	Store      session.Store
	JWTer      *auth.JWTer
	CookieName string
}

func NewEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(mdw.LoadSession(d.Store, d.JWTer, d.CookieName))

	authG := api.Group("/auth")
	{
		authG.POST("/login", d.AuthH.Login)
		authG.GET("/me", d.AuthH.Me)
		authG.POST("/logout", d.AuthH.Logout)
		authG.GET("/session", d.AuthH.SessionInfo)
	}

	// reads require a session, mutations require the ADMIN role
	users := api.Group("/users", mdw.RequireAuthenticated())
	{
		users.GET("", d.UserH.GetAll)
		users.GET("/paginated", d.UserH.GetPaginated)
		users.GET("/active", d.UserH.GetActive)
		users.GET("/count", d.UserH.Counts)
		users.GET("/search", d.UserH.Search)
		users.GET("/role/:role", d.UserH.GetByRole)
		users.GET("/email/:email", d.UserH.GetByEmail)
		users.GET("/:id", d.UserH.GetByID)
	}

	admin := api.Group("/users", mdw.RequireAdmin())
	{
		admin.POST("", d.UserH.Create)
		admin.PUT("/:id", d.UserH.Update)
		admin.PATCH("/:id/status", d.UserH.ToggleStatus)
		admin.DELETE("/:id/soft", d.UserH.SoftDelete)
		admin.DELETE("/:id/hard", d.UserH.HardDelete)
	}

	return r
}
