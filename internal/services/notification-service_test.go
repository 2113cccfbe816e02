package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/pkg/constants"
)

func newNotificationFixture() (*fakeNotificationRepo, *fakeUserRepo, NotificationServiceInterface) {
	notificationRepo := &fakeNotificationRepo{
		templates: map[uint64]entities.NotificationTemplate{
			1: {
				ID:          1,
				WorkspaceID: 7,
				Name:        "order_status_changed",
				Subject:     "Order {{po_number}} update",
				Body:        "Order {{po_number}} moved to {{status}}.",
			},
		},
		failCreateFor: map[uint64]bool{},
	}
	userRepo := &fakeUserRepo{
		users: map[uint64]entities.User{
			10: {ID: 10, WorkspaceID: 7},
			11: {ID: 11, WorkspaceID: 7},
		},
	}
	svc := NewNotificationService(notificationRepo, userRepo, zap.NewNop())
	return notificationRepo, userRepo, svc
}

func TestDispatchRendersAndCounts(t *testing.T) {
	notificationRepo, _, svc := newNotificationFixture()

	result, err := svc.Dispatch(context.Background(), 7, dto.DispatchDTO{
		TemplateID:   1,
		RecipientIDs: []uint64{10, 11},
		Variables:    map[string]string{"po_number": "PO-2026-0001", "status": "CONFIRMED"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 0, result.Failed)
	assert.NotEmpty(t, result.EventID)

	require.Len(t, notificationRepo.created, 2)
	first := notificationRepo.created[0]
	assert.Equal(t, "Order PO-2026-0001 update", first.Subject)
	assert.Equal(t, "Order PO-2026-0001 moved to CONFIRMED.", first.Body)
	assert.Equal(t, constants.NotificationScheduled, first.Status)
	assert.Equal(t, result.EventID, first.EventID)
	assert.Equal(t, result.EventID, notificationRepo.created[1].EventID,
		"one dispatch shares one event id")
}

func TestDispatchUnknownRecipientCountsAsFailed(t *testing.T) {
	notificationRepo, _, svc := newNotificationFixture()

	result, err := svc.Dispatch(context.Background(), 7, dto.DispatchDTO{
		TemplateID:   1,
		RecipientIDs: []uint64{10, 99},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, result.Total, result.Sent+result.Failed)
	assert.Len(t, notificationRepo.created, 1)
}

func TestDispatchInsertFailureCountsAsFailed(t *testing.T) {
	notificationRepo, _, svc := newNotificationFixture()
	notificationRepo.failCreateFor[11] = true

	result, err := svc.Dispatch(context.Background(), 7, dto.DispatchDTO{
		TemplateID:   1,
		RecipientIDs: []uint64{10, 11},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
}

func TestDispatchMissingTemplate(t *testing.T) {
	_, _, svc := newNotificationFixture()

	_, err := svc.Dispatch(context.Background(), 7, dto.DispatchDTO{
		TemplateID:   999,
		RecipientIDs: []uint64{10},
	})
	assert.ErrorContains(t, err, "template not found")
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	out := renderTemplate("Order {{po_number}} moved to {{status}}.",
		map[string]string{"po_number": "PO-1"})

	assert.Equal(t, "Order PO-1 moved to {{status}}.", out)
}
