package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/constants"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

type NotificationServiceInterface interface {
	GetTemplates(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.NotificationTemplate, uint64, error)
	CreateTemplate(ctx context.Context, workspaceID uint64, payload dto.CreateTemplateDTO) (*entities.NotificationTemplate, error)
	UpdateTemplate(ctx context.Context, workspaceID, id uint64, payload dto.UpdateTemplateDTO) (*entities.NotificationTemplate, error)

	Dispatch(ctx context.Context, workspaceID uint64, payload dto.DispatchDTO) (*entities.DispatchResult, error)
	GetForRecipient(ctx context.Context, workspaceID, recipientID uint64, filter types.Filter) ([]entities.Notification, uint64, error)
	MarkRead(ctx context.Context, workspaceID, recipientID, id uint64) error
	UnreadCount(ctx context.Context, workspaceID, recipientID uint64) (int, error)

	// Notify inserts a single ad hoc notification; used by event
	// listeners rather than HTTP handlers.
	Notify(ctx context.Context, workspaceID, recipientID uint64, subject, body string) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (s *NotificationService) GetTemplates(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.NotificationTemplate, uint64, error) {
	return s.notificationRepo.GetTemplates(ctx, workspaceID, filter)
}

func (s *NotificationService) CreateTemplate(ctx context.Context, workspaceID uint64, payload dto.CreateTemplateDTO) (*entities.NotificationTemplate, error) {
	id, err := s.notificationRepo.CreateTemplate(ctx, entities.NotificationTemplate{
		WorkspaceID: workspaceID,
		Name:        payload.Name,
		Subject:     payload.Subject,
		Body:        payload.Body,
	})
	if err != nil {
		return nil, err
	}
	return s.notificationRepo.FindTemplate(ctx, workspaceID, id)
}

func (s *NotificationService) UpdateTemplate(ctx context.Context, workspaceID, id uint64, payload dto.UpdateTemplateDTO) (*entities.NotificationTemplate, error) {
	tpl, err := s.notificationRepo.FindTemplate(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if payload.Subject != nil {
		tpl.Subject = *payload.Subject
	}
	if payload.Body != nil {
		tpl.Body = *payload.Body
	}
	if err := s.notificationRepo.UpdateTemplate(ctx, workspaceID, id, *tpl); err != nil {
		return nil, err
	}
	return s.notificationRepo.FindTemplate(ctx, workspaceID, id)
}

// Dispatch renders the template once and inserts one row per recipient.
// Delivery is at-most-once with no retry; a failed insert counts as
// failed and the loop carries on. Sent plus failed always equals the
// number of recipients.
func (s *NotificationService) Dispatch(ctx context.Context, workspaceID uint64, payload dto.DispatchDTO) (*entities.DispatchResult, error) {
	tpl, err := s.notificationRepo.FindTemplate(ctx, workspaceID, payload.TemplateID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("template not found", err)
	}

	recipients, err := s.userRepo.FindByIDs(ctx, workspaceID, payload.RecipientIDs)
	if err != nil {
		return nil, err
	}

	subject := renderTemplate(tpl.Subject, payload.Variables)
	body := renderTemplate(tpl.Body, payload.Variables)
	eventID := uuid.NewString()

	result := &entities.DispatchResult{
		EventID: eventID,
		Total:   len(payload.RecipientIDs),
	}

	for _, recipientID := range payload.RecipientIDs {
		if _, ok := recipients[recipientID]; !ok {
			result.Failed++
			s.logger.Warn("notification recipient not found",
				zap.Uint64("recipient_id", recipientID), zap.String("event_id", eventID))
			continue
		}
		templateID := tpl.ID
		_, err := s.notificationRepo.CreateNotification(ctx, entities.Notification{
			WorkspaceID: workspaceID,
			TemplateID:  &templateID,
			RecipientID: recipientID,
			Subject:     subject,
			Body:        body,
			Status:      constants.NotificationScheduled,
			EventID:     eventID,
		})
		if err != nil {
			result.Failed++
			s.logger.Error("failed to schedule notification",
				zap.Uint64("recipient_id", recipientID), zap.Error(err))
			continue
		}
		result.Sent++
	}
	return result, nil
}

func (s *NotificationService) GetForRecipient(ctx context.Context, workspaceID, recipientID uint64, filter types.Filter) ([]entities.Notification, uint64, error) {
	return s.notificationRepo.GetForRecipient(ctx, workspaceID, recipientID, filter)
}

func (s *NotificationService) MarkRead(ctx context.Context, workspaceID, recipientID, id uint64) error {
	return s.notificationRepo.MarkRead(ctx, workspaceID, recipientID, id)
}

func (s *NotificationService) UnreadCount(ctx context.Context, workspaceID, recipientID uint64) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, workspaceID, recipientID)
}

func (s *NotificationService) Notify(ctx context.Context, workspaceID, recipientID uint64, subject, body string) error {
	_, err := s.notificationRepo.CreateNotification(ctx, entities.Notification{
		WorkspaceID: workspaceID,
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
		Status:      constants.NotificationScheduled,
		EventID:     uuid.NewString(),
	})
	return err
}

// renderTemplate substitutes {{name}} placeholders. Unknown
// placeholders are left as-is so missing variables stay visible.
func renderTemplate(text string, variables map[string]string) string {
	for name, value := range variables {
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}
	return text
}
