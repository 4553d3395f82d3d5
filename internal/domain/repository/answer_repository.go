package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"qna_board/internal/common"
	"qna_board/internal/domain/model"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *model.Answer) error
	Update(ctx context.Context, answer *model.Answer) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]model.Answer, error)
	MarkAccepted(ctx context.Context, questionID, answerID string) error
}

type pgAnswerRepository struct {
	db *sql.DB
}

func NewPgAnswerRepository(db *sql.DB) AnswerRepository {
	return &pgAnswerRepository{db: db}
}

const answerSelect = `
	SELECT a.id, a.content, a.user_id, a.question_id, a.votes, a.is_accepted,
	       a.created_at, a.updated_at, u.username
	FROM answers a
	LEFT JOIN users u ON a.user_id = u.id`

func (r *pgAnswerRepository) Create(ctx context.Context, a *model.Answer) error {
	query := `INSERT INTO answers (id, content, user_id, question_id)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Content, a.UserID, a.QuestionID)
	if err != nil {
		return fmt.Errorf("pgAnswerRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAnswerRepository) Update(ctx context.Context, a *model.Answer) error {
	query := `UPDATE answers SET content = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, a.Content, a.ID); err != nil {
		return fmt.Errorf("pgAnswerRepository.Update: %w", err)
	}
	return nil
}

func (r *pgAnswerRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM answers WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("pgAnswerRepository.Delete: %w", err)
	}
	return nil
}

func (r *pgAnswerRepository) FindByID(ctx context.Context, id string) (*model.Answer, error) {
	answer := &model.Answer{}
	err := r.db.QueryRowContext(ctx, answerSelect+` WHERE a.id = $1`, id).Scan(
		&answer.ID, &answer.Content, &answer.UserID, &answer.QuestionID,
		&answer.Votes, &answer.IsAccepted, &answer.CreatedAt, &answer.UpdatedAt,
		&answer.Username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAnswerRepository.FindByID: %w", err)
	}
	return answer, nil
}

func (r *pgAnswerRepository) ListByQuestion(ctx context.Context, questionID string) ([]model.Answer, error) {
	query := answerSelect + ` WHERE a.question_id = $1 ORDER BY a.is_accepted DESC, a.created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("pgAnswerRepository.ListByQuestion: %w", err)
	}
	defer rows.Close()

	answers := []model.Answer{}
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(
			&a.ID, &a.Content, &a.UserID, &a.QuestionID,
			&a.Votes, &a.IsAccepted, &a.CreatedAt, &a.UpdatedAt,
			&a.Username,
		); err != nil {
			return nil, fmt.Errorf("pgAnswerRepository.ListByQuestion scan: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAnswerRepository.ListByQuestion rows: %w", err)
	}
	return answers, nil
}

// MarkAccepted flags a single answer as accepted and clears the flag on the
// question's other answers in one statement, keeping at most one accepted
// answer per question.
func (r *pgAnswerRepository) MarkAccepted(ctx context.Context, questionID, answerID string) error {
	query := `UPDATE answers SET is_accepted = (id = $2), updated_at = CURRENT_TIMESTAMP
	          WHERE question_id = $1`
	if _, err := r.db.ExecContext(ctx, query, questionID, answerID); err != nil {
		return fmt.Errorf("pgAnswerRepository.MarkAccepted: %w", err)
	}
	return nil
}
