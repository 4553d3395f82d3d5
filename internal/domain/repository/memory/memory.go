// Package memory provides in-memory implementations of the repository
// interfaces. They back the unit and router tests, where spinning up
// PostgreSQL would add nothing to what is being verified.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"qna_board/internal/common"
	"qna_board/internal/domain/model"
	"qna_board/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]*model.User{}}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return common.ErrConflict
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// SetAdmin flips the admin flag directly in the store, standing in for the
// out-of-band privilege management this API does not expose.
func (r *UserRepository) SetAdmin(id string, isAdmin bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsAdmin = isAdmin
	}
}

type CategoryRepository struct {
	mu         sync.Mutex
	categories map[string]*model.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: map[string]*model.Category{}}
}

func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == c.Name || existing.Slug == c.Slug {
			return common.ErrConflict
		}
	}
	copied := *c
	r.categories[c.ID] = &copied
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Category{}
	for _, c := range r.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type QuestionRepository struct {
	mu        sync.Mutex
	questions map[string]*model.Question
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: map[string]*model.Question{}}
}

func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *q
	r.questions[q.ID] = &copied
	return nil
}

func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.questions[q.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Title = q.Title
	stored.Slug = q.Slug
	stored.Content = q.Content
	stored.CategoryID = q.CategoryID
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.questions, id)
	return nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Question{}
	for _, q := range r.questions {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID string) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Question{}
	for _, q := range r.questions {
		if q.CategoryID == categoryID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *QuestionRepository) Search(ctx context.Context, term string) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(term)
	out := []model.Question{}
	for _, q := range r.questions {
		if strings.Contains(strings.ToLower(q.Title), needle) || strings.Contains(strings.ToLower(q.Content), needle) {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *QuestionRepository) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return common.ErrNotFound
	}
	q.Views++
	return nil
}

type AnswerRepository struct {
	mu      sync.Mutex
	answers map[string]*model.Answer
}

func NewAnswerRepository() *AnswerRepository {
	return &AnswerRepository{answers: map[string]*model.Answer{}}
}

func (r *AnswerRepository) Create(ctx context.Context, a *model.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *a
	r.answers[a.ID] = &copied
	return nil
}

func (r *AnswerRepository) Update(ctx context.Context, a *model.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.answers[a.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Content = a.Content
	return nil
}

func (r *AnswerRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.answers, id)
	return nil
}

func (r *AnswerRepository) FindByID(ctx context.Context, id string) (*model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.answers[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID string) ([]model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Answer{}
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *AnswerRepository) MarkAccepted(ctx context.Context, questionID, answerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			a.IsAccepted = a.ID == answerID
		}
	}
	return nil
}

// Interface conformance
var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.QuestionRepository = (*QuestionRepository)(nil)
	_ repository.AnswerRepository   = (*AnswerRepository)(nil)
)
