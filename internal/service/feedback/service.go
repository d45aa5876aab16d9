package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.FeedbackRepository
}

func NewService(repo repository.FeedbackRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateFeedback(ctx context.Context, req *model.CreateFeedbackRequest) (*model.Feedback, error) {
	feedback := &model.Feedback{
		AccountID: req.AccountID,
		Text:      req.Text,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback, nil
}

func (s *Service) ListFeedbacks(ctx context.Context) ([]*model.Feedback, error) {
	feedbacks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks: %w", err)
	}
	return feedbacks, nil
}

func (s *Service) ApproveFeedback(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateStatus(ctx, id, model.FeedbackStatusApproved, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("feedback", err)
		}
		return fmt.Errorf("failed to approve feedback: %w", err)
	}
	return nil
}

func (s *Service) RejectFeedback(ctx context.Context, id uuid.UUID, reason string) error {
	if err := s.repo.UpdateStatus(ctx, id, model.FeedbackStatusRejected, &reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("feedback", err)
		}
		return fmt.Errorf("failed to reject feedback: %w", err)
	}
	return nil
}
