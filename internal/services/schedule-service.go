package services

import (
	"context"
	"time"

	apperrors "apparel-erp/pkg/errors"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

type ScheduleServiceInterface interface {
	GetSchedules(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.MaintenanceSchedule, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceSchedule, error)
	FindDue(ctx context.Context, workspaceID uint64) ([]entities.MaintenanceSchedule, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateScheduleDTO) (*entities.MaintenanceSchedule, error)
	Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateScheduleDTO) (*entities.MaintenanceSchedule, error)
}

type ScheduleService struct {
	scheduleRepo repositories.ScheduleRepositoryInterface
	assetRepo    repositories.AssetRepositoryInterface
}

func NewScheduleService(
	scheduleRepo repositories.ScheduleRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
) ScheduleServiceInterface {
	return &ScheduleService{scheduleRepo: scheduleRepo, assetRepo: assetRepo}
}

func (s *ScheduleService) GetSchedules(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.MaintenanceSchedule, uint64, error) {
	return s.scheduleRepo.GetSchedules(ctx, workspaceID, filter)
}

func (s *ScheduleService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceSchedule, error) {
	return s.scheduleRepo.FindByID(ctx, workspaceID, id)
}

func (s *ScheduleService) FindDue(ctx context.Context, workspaceID uint64) ([]entities.MaintenanceSchedule, error) {
	return s.scheduleRepo.FindDue(ctx, workspaceID)
}

func (s *ScheduleService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateScheduleDTO) (*entities.MaintenanceSchedule, error) {
	if _, err := s.assetRepo.FindByID(ctx, workspaceID, payload.AssetID); err != nil {
		return nil, apperrors.NewBadRequestError("asset not found", err)
	}

	id, err := s.scheduleRepo.Create(ctx, entities.MaintenanceSchedule{
		WorkspaceID:  workspaceID,
		AssetID:      payload.AssetID,
		Title:        payload.Title,
		IntervalDays: payload.IntervalDays,
		NextDueAt:    time.Now().AddDate(0, 0, payload.IntervalDays),
		Active:       true,
	})
	if err != nil {
		return nil, err
	}
	return s.scheduleRepo.FindByID(ctx, workspaceID, id)
}

func (s *ScheduleService) Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateScheduleDTO) (*entities.MaintenanceSchedule, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if payload.Title != nil {
		schedule.Title = *payload.Title
	}
	if payload.IntervalDays != nil && *payload.IntervalDays != schedule.IntervalDays {
		schedule.IntervalDays = *payload.IntervalDays
		// Changing the cadence re-anchors the next due date from the
		// last completion, or from now when nothing was done yet.
		anchor := time.Now()
		if schedule.LastDoneAt != nil {
			anchor = *schedule.LastDoneAt
		}
		schedule.NextDueAt = anchor.AddDate(0, 0, *payload.IntervalDays)
	}
	if payload.Active != nil {
		schedule.Active = *payload.Active
	}

	if err := s.scheduleRepo.Update(ctx, workspaceID, id, *schedule); err != nil {
		return nil, err
	}
	return s.scheduleRepo.FindByID(ctx, workspaceID, id)
}
