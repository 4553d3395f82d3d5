package service

import (
	"context"
	"errors"
	"log"
	"qna_board/internal/common"
	"qna_board/internal/domain/model"
	"qna_board/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	categoryRepo repository.CategoryRepository
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	categoryRepo repository.CategoryRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		categoryRepo: categoryRepo,
	}
}

type CreateQuestionRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"category_id"`
}

type UpdateQuestionRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"category_id"`
}

func (s *QuestionService) CreateQuestion(ctx context.Context, actor *model.User, req CreateQuestionRequest) (*model.Question, error) {
	if req.Title == "" || req.Content == "" || req.CategoryID == "" {
		return nil, common.Errorf("missing required fields for question creation: %w", common.ErrBadRequest)
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("question category does not exist: %w", common.ErrNotFound)
		}
		return nil, common.Errorf("failed to check category: %w", err)
	}

	question := &model.Question{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Slug:       slug.Make(req.Title),
		Content:    req.Content,
		UserID:     actor.ID,
		CategoryID: req.CategoryID,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, common.Errorf("failed to create question: %w", err)
	}

	// Re-read for the username/category projections
	created, err := s.questionRepo.FindByID(ctx, question.ID)
	if err != nil {
		return nil, common.Errorf("failed to load created question: %w", err)
	}
	return created, nil
}

func (s *QuestionService) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.List(ctx)
}

func (s *QuestionService) ListQuestionsByCategory(ctx context.Context, categoryID string) ([]model.Question, error) {
	return s.questionRepo.ListByCategory(ctx, categoryID)
}

func (s *QuestionService) SearchQuestions(ctx context.Context, term string) ([]model.Question, error) {
	if term == "" {
		return s.questionRepo.List(ctx)
	}
	return s.questionRepo.Search(ctx, term)
}

// GetQuestion returns a question with its answers and bumps the view counter.
// The counter update is best-effort: a failed bump never fails the read.
func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.questionRepo.IncrementViews(ctx, id); err != nil {
		log.Printf("failed to increment views for question %s: %v", id, err)
	} else {
		question.Views++
	}

	answers, err := s.answerRepo.ListByQuestion(ctx, id)
	if err != nil {
		return nil, common.Errorf("failed to load answers: %w", err)
	}
	question.Answers = answers
	return question, nil
}

// UpdateQuestion is owner-only; admins get no override here. Empty request
// fields keep the stored values.
func (s *QuestionService) UpdateQuestion(ctx context.Context, questionID string, actor *model.User, req UpdateQuestionRequest) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if !isOwner(question.UserID, actor) {
		return nil, common.ErrForbidden
	}

	if req.CategoryID != "" && req.CategoryID != question.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.Errorf("question category does not exist: %w", common.ErrBadRequest)
			}
			return nil, common.Errorf("failed to check category: %w", err)
		}
		question.CategoryID = req.CategoryID
	}
	if req.Title != "" {
		question.Title = req.Title
		question.Slug = slug.Make(req.Title)
	}
	if req.Content != "" {
		question.Content = req.Content
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, common.Errorf("failed to update question: %w", err)
	}

	updated, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, common.Errorf("failed to load updated question: %w", err)
	}
	return updated, nil
}

// DeleteQuestion is owner-or-admin. Answers are removed alongside the
// question by the schema's FK cascade.
func (s *QuestionService) DeleteQuestion(ctx context.Context, questionID string, actor *model.User) error {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return err
	}

	if !canDelete(question.UserID, actor) {
		return common.ErrForbidden
	}

	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return common.Errorf("failed to delete question: %w", err)
	}
	return nil
}
