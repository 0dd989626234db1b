package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-user-account-api/internal/core/auth"
	"go-user-account-api/internal/core/config"
	"go-user-account-api/internal/core/database"
	"go-user-account-api/internal/core/logger"
	"go-user-account-api/internal/core/server"
	"go-user-account-api/internal/core/session"
	"go-user-account-api/internal/domain"
	"go-user-account-api/internal/repo"
	"go-user-account-api/internal/service"
	"go-user-account-api/internal/transport/http/handler"
	"go-user-account-api/internal/transport/http/router"
	"go-user-account-api/pkg/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	var log *zap.Logger
	var cleanup func()
	if cfg.Log.File != "" {
		log, cleanup = logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON,
			cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	} else {
		log, cleanup = logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	sessionTTL := time.Duration(cfg.Session.TTLMin) * time.Minute
	var store session.Store
	if cfg.Redis.Addr != "" {
		store = session.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sessionTTL)
		log.Info("session store: redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = session.NewMemory(sessionTTL)
		log.Info("session store: memory")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	userRepo := repo.NewUserRepo(db)
	hasher := utils.BcryptHasher{}
	userSvc := service.NewUserService(userRepo, hasher)
	authSvc := service.NewAuthService(userRepo, hasher, log)

	cookie := handler.CookieOpts{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.TTLMin * 60,
		Secure: cfg.Session.Secure,
	}
	authH := handler.NewAuthHandler(authSvc, store, jwter, cookie, log)
	userH := handler.NewUserHandler(userSvc)

	r := router.NewEngine(router.Deps{
		Log:        log,
		AuthH:      authH,
		UserH:      userH,
		Store:      store,
		JWTer:      jwter,
		CookieName: cfg.Session.CookieName,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user api start FAILED", zap.Error(err))
		}
	}()
	log.Info("user api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("user api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
