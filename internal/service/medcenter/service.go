package medcenter

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
	repo repository.MedCenterRepository
}

func NewService(repo repository.MedCenterRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCenter(ctx context.Context, req *model.CreateMedCenterRequest) (*model.MedicalCenter, error) {
	center := &model.MedicalCenter{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.repo.Create(ctx, center); err != nil {
		return nil, fmt.Errorf("failed to create med center: %w", err)
	}
	return center, nil
}

func (s *Service) GetCenter(ctx context.Context, id uuid.UUID) (*model.MedicalCenter, error) {
	center, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("med center", err)
		}
		return nil, fmt.Errorf("failed to get med center: %w", err)
	}
	return center, nil
}

func (s *Service) ListCenters(ctx context.Context) ([]*model.MedicalCenter, error) {
	centers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list med centers: %w", err)
	}
	return centers, nil
}
