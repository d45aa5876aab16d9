package inpatient

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
	repo repository.InpatientRepository
}

func NewService(repo repository.InpatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCare(ctx context.Context, medCenterID uuid.UUID, req *model.CreateInpatientCareRequest) (*model.InpatientCare, error) {
	care := &model.InpatientCare{
		MedCenterID: medCenterID,
		PatientID:   req.PatientID,
		Ward:        req.Ward,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, care); err != nil {
		return nil, fmt.Errorf("failed to create inpatient care: %w", err)
	}
	return care, nil
}

func (s *Service) ListCares(ctx context.Context, medCenterID uuid.UUID, active bool) ([]*model.InpatientCare, error) {
	cares, err := s.repo.ListByMedCenter(ctx, medCenterID, active)
	if err != nil {
		return nil, fmt.Errorf("failed to list inpatient cares: %w", err)
	}
	return cares, nil
}

func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("care record", err)
		}
		return fmt.Errorf("failed to update inpatient care: %w", err)
	}
	return nil
}
