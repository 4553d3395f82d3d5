package handler

import (
	"encoding/json"
	"net/http"
	"qna_board/internal/api/middleware"
	"qna_board/internal/app/service"
	"qna_board/internal/common"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	auth            *middleware.Auth
}

func NewCategoryHandler(cs *service.CategoryService, auth *middleware.Auth) *CategoryHandler {
	return &CategoryHandler{categoryService: cs, auth: auth}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCategories) // GET /api/v1/categories

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(h.auth.Authenticator)
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.createCategory) // POST /api/v1/categories
	})
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Server Error")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), identity, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, category)
}
