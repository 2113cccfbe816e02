package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	"apparel-erp/internal/events"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/eventbus"
)

// AuditListener writes the audit trail off the request path.
type AuditListener struct {
	auditRepo repositories.AuditRepositoryInterface
	logger    *zap.Logger
}

func NewAuditListener(auditRepo repositories.AuditRepositoryInterface, logger *zap.Logger) *AuditListener {
	return &AuditListener{auditRepo: auditRepo, logger: logger}
}

func (l *AuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EntityMutatedName, l.handleEntityMutated)
}

func (l *AuditListener) handleEntityMutated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.EntityMutated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	_, err := l.auditRepo.Create(ctx, entities.AuditLog{
		WorkspaceID: e.WorkspaceID,
		ActorID:     e.ActorID,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Before:      e.Before,
		After:       e.After,
		BatchID:     e.BatchID,
	})
	if err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	l.logger.Debug("audit log written",
		zap.String("entity_type", e.EntityType),
		zap.Uint64("entity_id", e.EntityID),
		zap.String("action", e.Action),
	)
	return nil
}
