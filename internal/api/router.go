package api

import (
	"net/http"
	"time"
	"qna_board/internal/api/handler"
	"qna_board/internal/api/middleware"
	"qna_board/internal/app/service"
	"qna_board/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokenService *security.TokenService,
	auth *middleware.Auth,
	authService *service.AuthService,
	categoryService *service.CategoryService,
	questionService *service.QuestionService,
	answerService *service.AnswerService,
	corsAllowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The SPA frontend is served from a different origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Parses and verifies an "Authorization: Bearer <token>" header on every
	// request; the Authenticator middleware decides what to do with the result
	// on protected routes.
	r.Use(jwtauth.Verifier(tokenService.JWTAuth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (register/login public, logout/me authenticated)
		authHandler := handler.NewAuthHandler(authService, auth)
		v1.Route("/auth", authHandler.RegisterRoutes)

		// Category routes (list public, create admin)
		categoryHandler := handler.NewCategoryHandler(categoryService, auth)
		v1.Route("/categories", categoryHandler.RegisterRoutes)

		// Question routes (reads public, mutations authenticated), with the
		// nested answer-create route alongside them
		questionHandler := handler.NewQuestionHandler(questionService, auth)
		answerHandler := handler.NewAnswerHandler(answerService, auth)
		v1.Route("/questions", func(qr chi.Router) {
			questionHandler.RegisterRoutes(qr)
			qr.Group(func(authed chi.Router) {
				authed.Use(auth.Authenticator)
				authed.Post("/{questionID}/answers", answerHandler.AddAnswer)
			})
		})

		// Answer routes (all authenticated)
		v1.Route("/answers", answerHandler.RegisterRoutes)
	})

	return r
}
