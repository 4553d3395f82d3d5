package service

import (
	"context"
	"testing"
	"qna_board/internal/common"
	"qna_board/internal/domain/model"
	"qna_board/internal/domain/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionFixture struct {
	svc      *QuestionService
	answers  *memory.AnswerRepository
	category *model.Category
	owner    *model.User
	other    *model.User
	admin    *model.User
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	questionRepo := memory.NewQuestionRepository()
	answerRepo := memory.NewAnswerRepository()
	categoryRepo := memory.NewCategoryRepository()

	category := &model.Category{ID: uuid.NewString(), Name: "go", Slug: "go"}
	require.NoError(t, categoryRepo.Create(context.Background(), category))

	return &questionFixture{
		svc:      NewQuestionService(questionRepo, answerRepo, categoryRepo),
		answers:  answerRepo,
		category: category,
		owner:    &model.User{ID: uuid.NewString(), Username: "owner"},
		other:    &model.User{ID: uuid.NewString(), Username: "other"},
		admin:    &model.User{ID: uuid.NewString(), Username: "admin", IsAdmin: true},
	}
}

func (f *questionFixture) createQuestion(t *testing.T) *model.Question {
	t.Helper()
	q, err := f.svc.CreateQuestion(context.Background(), f.owner, CreateQuestionRequest{
		Title:      "How do slices grow?",
		Content:    "What is the growth factor of append?",
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)
	return q
}

func TestCreateQuestion(t *testing.T) {
	f := newQuestionFixture(t)

	q := f.createQuestion(t)
	assert.Equal(t, "How do slices grow?", q.Title)
	assert.Equal(t, "how-do-slices-grow", q.Slug)
	assert.Equal(t, f.owner.ID, q.UserID)
	assert.Equal(t, f.category.ID, q.CategoryID)
}

func TestCreateQuestionUnknownCategory(t *testing.T) {
	f := newQuestionFixture(t)

	_, err := f.svc.CreateQuestion(context.Background(), f.owner, CreateQuestionRequest{
		Title:      "t",
		Content:    "c",
		CategoryID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateQuestionValidation(t *testing.T) {
	f := newQuestionFixture(t)

	_, err := f.svc.CreateQuestion(context.Background(), f.owner, CreateQuestionRequest{Title: "t"})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestGetQuestionIncrementsViewsAndLoadsAnswers(t *testing.T) {
	f := newQuestionFixture(t)
	q := f.createQuestion(t)

	require.NoError(t, f.answers.Create(context.Background(), &model.Answer{
		ID: uuid.NewString(), Content: "it doubles, then grows slower", UserID: f.other.ID, QuestionID: q.ID,
	}))

	got, err := f.svc.GetQuestion(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)
	require.Len(t, got.Answers, 1)

	got, err = f.svc.GetQuestion(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
}

func TestUpdateQuestionOwnerOnly(t *testing.T) {
	f := newQuestionFixture(t)
	q := f.createQuestion(t)

	// Non-owner is denied
	_, err := f.svc.UpdateQuestion(context.Background(), q.ID, f.other, UpdateQuestionRequest{Title: "hijacked"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Admin gets NO override on update; this asymmetry is intentional
	_, err = f.svc.UpdateQuestion(context.Background(), q.ID, f.admin, UpdateQuestionRequest{Title: "hijacked"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Owner succeeds; empty fields keep stored values
	updated, err := f.svc.UpdateQuestion(context.Background(), q.ID, f.owner, UpdateQuestionRequest{Title: "New title"})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, q.Content, updated.Content)
	assert.Equal(t, q.CategoryID, updated.CategoryID)
}

func TestUpdateQuestionUnknownCategory(t *testing.T) {
	f := newQuestionFixture(t)
	q := f.createQuestion(t)

	_, err := f.svc.UpdateQuestion(context.Background(), q.ID, f.owner, UpdateQuestionRequest{CategoryID: uuid.NewString()})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestDeleteQuestionOwnerOrAdmin(t *testing.T) {
	f := newQuestionFixture(t)

	// Non-owner non-admin is denied
	q := f.createQuestion(t)
	err := f.svc.DeleteQuestion(context.Background(), q.ID, f.other)
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Owner may delete
	require.NoError(t, f.svc.DeleteQuestion(context.Background(), q.ID, f.owner))
	_, err = f.svc.GetQuestion(context.Background(), q.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Admin may delete someone else's question
	q = f.createQuestion(t)
	require.NoError(t, f.svc.DeleteQuestion(context.Background(), q.ID, f.admin))
}

func TestDeleteQuestionNotFound(t *testing.T) {
	f := newQuestionFixture(t)
	err := f.svc.DeleteQuestion(context.Background(), uuid.NewString(), f.owner)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
