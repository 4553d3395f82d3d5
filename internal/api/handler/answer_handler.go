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

type AnswerHandler struct {
	answerService *service.AnswerService
	auth          *middleware.Auth
}

func NewAnswerHandler(as *service.AnswerService, auth *middleware.Auth) *AnswerHandler {
	return &AnswerHandler{answerService: as, auth: auth}
}

// RegisterRoutes mounts the /answers routes. All answer routes require auth:
// answers are only readable through their question's detail view. The nested
// create route lives under /questions and is registered by the router via
// AddAnswer.
func (h *AnswerHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.auth.Authenticator)
	r.Put("/{answerID}", h.updateAnswer)
	r.Delete("/{answerID}", h.deleteAnswer)
	r.Post("/{answerID}/accept", h.acceptAnswer)
}

// AddAnswer handles POST /questions/{questionID}/answers.
func (h *AnswerHandler) AddAnswer(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.AddAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	questionID := chi.URLParam(r, "questionID")
	answer, err := h.answerService.AddAnswer(r.Context(), identity, questionID, req)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "Question not found")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, answer)
}

func (h *AnswerHandler) updateAnswer(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	answerID := chi.URLParam(r, "answerID")
	answer, err := h.answerService.UpdateAnswer(r.Context(), answerID, identity, req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrForbidden):
			common.RespondWithError(w, http.StatusForbidden, "Not authorised to answer this question")
		case errors.Is(err, common.ErrNotFound):
			common.RespondWithError(w, http.StatusNotFound, "Answer not found")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, answer)
}

func (h *AnswerHandler) deleteAnswer(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	answerID := chi.URLParam(r, "answerID")
	if err := h.answerService.DeleteAnswer(r.Context(), answerID, identity); err != nil {
		switch {
		case errors.Is(err, common.ErrForbidden):
			common.RespondWithError(w, http.StatusForbidden, "User not authorized")
		case errors.Is(err, common.ErrNotFound):
			common.RespondWithError(w, http.StatusNotFound, "Answer not found")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Answer removed"})
}

func (h *AnswerHandler) acceptAnswer(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	answerID := chi.URLParam(r, "answerID")
	answer, err := h.answerService.AcceptAnswer(r.Context(), answerID, identity)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrForbidden):
			common.RespondWithError(w, http.StatusForbidden, "Only the question owner can accept an answer")
		case errors.Is(err, common.ErrNotFound):
			common.RespondWithError(w, http.StatusNotFound, "Answer not found")
		default:
			common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		}
		return
	}
	common.RespondWithJSON(w, http.StatusOK, answer)
}
