package httpx

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/you/schedulo/internal/http/handlers"
	"github.com/you/schedulo/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. CORS origins come from injected
// configuration, not module state.
func BuildRouter(ah *handlers.AuthHandlers, th *handlers.TaskHandlers, authMW *middleware.AuthMW, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/resend-otp", ah.ResendOTP)
	auth.POST("/reset-password", ah.ResetPassword)

	session := r.Group("/auth").Use(authMW.WithSession())
	session.POST("/logout", ah.Logout)
	session.GET("/me", ah.Me)

	tasks := r.Group("/tasks").Use(authMW.WithSession())
	tasks.POST("/add", th.Add)
	tasks.GET("/all", th.All)
	tasks.GET("/:id", th.Get)
	tasks.PUT("/update/:id", th.Update)
	tasks.DELETE("/delete/:id", th.Delete)
	tasks.PUT("/toggle-status/:id", th.ToggleStatus)

	return r
}
