package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
)

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	query := `
		INSERT INTO feedbacks (id, account_id, text, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	feedback.ID = uuid.New()
	feedback.Status = model.FeedbackStatusPending
	feedback.CreatedAt = time.Now()
	feedback.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		feedback.ID,
		feedback.AccountID,
		feedback.Text,
		feedback.Status,
		feedback.CreatedAt,
		feedback.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) Get(ctx context.Context, id uuid.UUID) (*model.Feedback, error) {
	query := `
		SELECT id, account_id, text, status, reject_reason, created_at, updated_at
		FROM feedbacks
		WHERE id = $1
	`
	var feedback model.Feedback
	err := r.db.GetContext(ctx, &feedback, query, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &feedback, nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]*model.Feedback, error) {
	query := `
		SELECT id, account_id, text, status, reject_reason, created_at, updated_at
		FROM feedbacks
		ORDER BY created_at DESC
	`
	var feedbacks []*model.Feedback
	err := r.db.SelectContext(ctx, &feedbacks, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks: %w", err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.FeedbackStatus, reason *string) error {
	query := `
		UPDATE feedbacks
		SET status = $1, reject_reason = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, reason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update feedback status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
