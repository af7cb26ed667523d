package main

import (
	"context"
	"log"
	"net/http"

	_ "taskbox/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskbox/internal/auth"
	"taskbox/internal/cache"
	"taskbox/internal/config"
	"taskbox/internal/db"
	"taskbox/internal/handler"
	"taskbox/internal/mailer"
	"taskbox/internal/model"
	"taskbox/internal/repository"
	"taskbox/internal/router"
	"taskbox/internal/service"
)

// @title Taskbox API
// @version 1.0
// @description Task tracker with email-confirmed login and password reset.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	sesMailer, err := mailer.NewSES(context.Background(), cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.SourceEmail)
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService, sesMailer, cfg.VerifyBaseURL)
	taskService := service.NewTaskService(userRepo, taskRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	verifyHandler := handler.NewVerifyHandler(authService, sesMailer, cfg.ClientBaseURL)
	taskHandler := handler.NewTaskHandler(taskService)

	// Register routes
	router.Register(e, cfg, authHandler, verifyHandler, taskHandler)

	addr := ":" + cfg.ServerPort
	log.Printf("server listen on http://localhost%s", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
