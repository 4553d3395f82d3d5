package service

import (
	"context"
	"qna_board/internal/common"
	"qna_board/internal/domain/model"
	"qna_board/internal/domain/repository"

	"github.com/google/uuid"
)

type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
}

func NewAnswerService(answerRepo repository.AnswerRepository, questionRepo repository.QuestionRepository) *AnswerService {
	return &AnswerService{answerRepo: answerRepo, questionRepo: questionRepo}
}

type AddAnswerRequest struct {
	Content string `json:"content"`
}

type UpdateAnswerRequest struct {
	Content string `json:"content"`
}

func (s *AnswerService) AddAnswer(ctx context.Context, actor *model.User, questionID string, req AddAnswerRequest) (*model.Answer, error) {
	if req.Content == "" {
		return nil, common.Errorf("answer content is required: %w", common.ErrBadRequest)
	}

	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, err
	}

	answer := &model.Answer{
		ID:         uuid.NewString(),
		Content:    req.Content,
		UserID:     actor.ID,
		QuestionID: questionID,
	}

	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, common.Errorf("failed to create answer: %w", err)
	}

	created, err := s.answerRepo.FindByID(ctx, answer.ID)
	if err != nil {
		return nil, common.Errorf("failed to load created answer: %w", err)
	}
	return created, nil
}

// UpdateAnswer is owner-only, mirroring the question update rule.
func (s *AnswerService) UpdateAnswer(ctx context.Context, answerID string, actor *model.User, req UpdateAnswerRequest) (*model.Answer, error) {
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	if !isOwner(answer.UserID, actor) {
		return nil, common.ErrForbidden
	}

	if req.Content != "" {
		answer.Content = req.Content
	}

	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, common.Errorf("failed to update answer: %w", err)
	}

	updated, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, common.Errorf("failed to load updated answer: %w", err)
	}
	return updated, nil
}

// DeleteAnswer is owner-or-admin.
func (s *AnswerService) DeleteAnswer(ctx context.Context, answerID string, actor *model.User) error {
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return err
	}

	if !canDelete(answer.UserID, actor) {
		return common.ErrForbidden
	}

	if err := s.answerRepo.Delete(ctx, answerID); err != nil {
		return common.Errorf("failed to delete answer: %w", err)
	}
	return nil
}

// AcceptAnswer marks an answer as the accepted one. Only the owner of the
// question the answer belongs to may accept.
func (s *AnswerService) AcceptAnswer(ctx context.Context, answerID string, actor *model.User) (*model.Answer, error) {
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, common.Errorf("failed to load question: %w", err)
	}

	if !isOwner(question.UserID, actor) {
		return nil, common.ErrForbidden
	}

	if err := s.answerRepo.MarkAccepted(ctx, answer.QuestionID, answerID); err != nil {
		return nil, common.Errorf("failed to accept answer: %w", err)
	}

	accepted, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, common.Errorf("failed to load accepted answer: %w", err)
	}
	return accepted, nil
}
