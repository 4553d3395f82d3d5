package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"qna_board/internal/common"
	"qna_board/internal/domain/model"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	List(ctx context.Context) ([]model.Question, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.Question, error)
	Search(ctx context.Context, term string) ([]model.Question, error)
	IncrementViews(ctx context.Context, id string) error
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

const questionSelect = `
	SELECT q.id, q.title, q.slug, q.content, q.user_id, q.category_id,
	       q.views, q.votes, q.created_at, q.updated_at,
	       u.username, c.name AS category_name
	FROM questions q
	LEFT JOIN users u ON q.user_id = u.id
	LEFT JOIN categories c ON q.category_id = c.id`

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions (id, title, slug, content, user_id, category_id)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, q.ID, q.Title, q.Slug, q.Content, q.UserID, q.CategoryID)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) Update(ctx context.Context, q *model.Question) error {
	query := `UPDATE questions SET
	            title = $1, slug = $2, content = $3, category_id = $4,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, q.Title, q.Slug, q.Content, q.CategoryID, q.ID)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Update: %w", err)
	}
	return nil
}

// Delete removes a question; its answers go with it via the FK cascade.
func (r *pgQuestionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM questions WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("pgQuestionRepository.Delete: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	question := &model.Question{}
	err := r.db.QueryRowContext(ctx, questionSelect+` WHERE q.id = $1`, id).Scan(
		&question.ID, &question.Title, &question.Slug, &question.Content,
		&question.UserID, &question.CategoryID, &question.Views, &question.Votes,
		&question.CreatedAt, &question.UpdatedAt,
		&question.Username, &question.CategoryName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	return question, nil
}

func (r *pgQuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	return r.queryMany(ctx, questionSelect+` ORDER BY q.created_at DESC`)
}

func (r *pgQuestionRepository) ListByCategory(ctx context.Context, categoryID string) ([]model.Question, error) {
	return r.queryMany(ctx, questionSelect+` WHERE q.category_id = $1 ORDER BY q.created_at DESC`, categoryID)
}

func (r *pgQuestionRepository) Search(ctx context.Context, term string) ([]model.Question, error) {
	query := questionSelect + ` WHERE q.title ILIKE '%' || $1 || '%' OR q.content ILIKE '%' || $1 || '%'
	          ORDER BY q.created_at DESC`
	return r.queryMany(ctx, query, term)
}

func (r *pgQuestionRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE questions SET views = views + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("pgQuestionRepository.IncrementViews: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]model.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(
			&q.ID, &q.Title, &q.Slug, &q.Content,
			&q.UserID, &q.CategoryID, &q.Views, &q.Votes,
			&q.CreatedAt, &q.UpdatedAt,
			&q.Username, &q.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository rows: %w", err)
	}
	return questions, nil
}
