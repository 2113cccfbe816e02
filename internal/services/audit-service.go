package services

import (
	"context"

	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

type AuditServiceInterface interface {
	GetLogs(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.AuditLog, uint64, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepositoryInterface
}

func NewAuditService(auditRepo repositories.AuditRepositoryInterface) AuditServiceInterface {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) GetLogs(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.AuditLog, uint64, error) {
	return s.auditRepo.GetLogs(ctx, workspaceID, filter)
}
