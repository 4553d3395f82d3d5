package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"qna_board/internal/api"
	"qna_board/internal/api/middleware"
	"qna_board/internal/app/service"
	"qna_board/internal/common/security"
	"qna_board/internal/domain/repository"
	"qna_board/internal/platform/config"
	"qna_board/internal/platform/database"
	"qna_board/internal/platform/session"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	// 3. Apply Migrations
	if err := database.Migrate(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}
	log.Println("Migrations applied.")

	// 4. Initialize Token Service
	tokenService := security.NewTokenService(cfg.JWTKey, cfg.TokenTTL)

	// 5. Initialize Session Store (optional token allowlist)
	var sessions session.Store
	if cfg.SessionStoreEnabled {
		redisClient, err := session.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient, cfg.TokenTTL)
		log.Println("Session store connected.")
	} else {
		log.Println("Session store disabled; tokens are stateless.")
	}

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	categoryRepo := repository.NewPgCategoryRepository(db)
	questionRepo := repository.NewPgQuestionRepository(db)
	answerRepo := repository.NewPgAnswerRepository(db)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, tokenService, sessions)
	categoryService := service.NewCategoryService(categoryRepo)
	questionService := service.NewQuestionService(questionRepo, answerRepo, categoryRepo)
	answerService := service.NewAnswerService(answerRepo, questionRepo)

	// 8. Initialize Auth Middleware, Router & HTTP Server
	auth := middleware.NewAuth(userRepo, sessions)
	router := api.NewRouter(tokenService, auth, authService, categoryService, questionService, answerService, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
