package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/schedulo/internal/config"
	httpx "github.com/you/schedulo/internal/http"
	"github.com/you/schedulo/internal/http/handlers"
	"github.com/you/schedulo/internal/http/middleware"
	"github.com/you/schedulo/internal/infrastructure/auth"
	"github.com/you/schedulo/internal/infrastructure/database"
	"github.com/you/schedulo/internal/infrastructure/notifications"
	"github.com/you/schedulo/internal/infrastructure/ratelimit"
	"github.com/you/schedulo/internal/infrastructure/repositories"
	"github.com/you/schedulo/internal/services"
)

// Run wires the dependency graph and serves HTTP until the listener
// fails.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx := context.Background()

	mongoClient, err := database.OpenMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	db := mongoClient.Database(cfg.MongoDatabase)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := database.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService(12)
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	notifier := notifications.NewSendGridService(cfg.SendGridAPIKey, cfg.SendGridFromName, cfg.SendGridFromEmail)
	limiter := ratelimit.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// Services
	otpSvc := services.NewOTPService(userRepo)
	authSvc := services.NewAuthService(userRepo, passwordSvc, tokenSvc, otpSvc, notifier, limiter,
		cfg.OTPRegisterTTL, cfg.OTPResetTTL)
	taskSvc := services.NewTaskService(taskRepo)

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, int(cfg.TokenTTL.Seconds()), cfg.CookieSecure)
	taskH := handlers.NewTaskHandlers(taskSvc)
	authMW := middleware.NewAuthMW(tokenSvc)

	r := httpx.BuildRouter(authH, taskH, authMW, cfg.CORSOrigins)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
