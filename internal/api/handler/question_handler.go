package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"qna_board/internal/api/middleware"
	"qna_board/internal/app/service"
	"qna_board/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService *service.QuestionService
	auth            *middleware.Auth
}

func NewQuestionHandler(qs *service.QuestionService, auth *middleware.Auth) *QuestionHandler {
	return &QuestionHandler{questionService: qs, auth: auth}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listQuestions)                           // GET /api/v1/questions
	r.Get("/search", h.searchQuestions)                   // GET /api/v1/questions/search?q=term
	r.Get("/category/{categoryID}", h.listByCategory)     // GET /api/v1/questions/category/{id}
	r.Get("/{questionID}", h.getQuestion)                 // GET /api/v1/questions/{id}

	r.Group(func(authed chi.Router) {
		authed.Use(h.auth.Authenticator)
		authed.Post("/", h.createQuestion)              // POST /api/v1/questions
		authed.Put("/{questionID}", h.updateQuestion)   // PUT /api/v1/questions/{id}
		authed.Delete("/{questionID}", h.deleteQuestion) // DELETE /api/v1/questions/{id}
	})
}

func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionService.ListQuestions(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) searchQuestions(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	questions, err := h.questionService.SearchQuestions(r.Context(), term)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) listByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	questions, err := h.questionService.ListQuestionsByCategory(r.Context(), categoryID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "questionID")
	question, err := h.questionService.GetQuestion(r.Context(), questionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "Question not found")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	question, err := h.questionService.CreateQuestion(r.Context(), identity, req)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "Question category does not exist")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, question)
}

func (h *QuestionHandler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	questionID := chi.URLParam(r, "questionID")
	question, err := h.questionService.UpdateQuestion(r.Context(), questionID, identity, req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrForbidden):
			common.RespondWithError(w, http.StatusForbidden, "Sorry you dont have permission to edit this question")
		case errors.Is(err, common.ErrNotFound):
			common.RespondWithError(w, http.StatusNotFound, "The question does not exist")
		case errors.Is(err, common.ErrBadRequest):
			common.RespondWithError(w, http.StatusBadRequest, "The question category does not exist")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	questionID := chi.URLParam(r, "questionID")
	if err := h.questionService.DeleteQuestion(r.Context(), questionID, identity); err != nil {
		switch {
		case errors.Is(err, common.ErrForbidden):
			common.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this question")
		case errors.Is(err, common.ErrNotFound):
			common.RespondWithError(w, http.StatusNotFound, "Question not found")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Question removed"})
}
