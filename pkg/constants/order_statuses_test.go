package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	allowed := [][2]string{
		{OrderDraft, OrderConfirmed},
		{OrderDraft, OrderCancelled},
		{OrderConfirmed, OrderInProduction},
		{OrderInProduction, OrderQC},
		{OrderQC, OrderInProduction},
		{OrderQC, OrderDelivered},
		{OrderDelivered, OrderClosed},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(OrderTransitions, tc[0], tc[1]),
			"%s -> %s should be allowed", tc[0], tc[1])
	}

	rejected := [][2]string{
		{OrderDraft, OrderInProduction},
		{OrderDraft, OrderDelivered},
		{OrderConfirmed, OrderDelivered},
		{OrderDelivered, OrderCancelled},
		{OrderClosed, OrderDraft},
		{OrderCancelled, OrderConfirmed},
	}
	for _, tc := range rejected {
		assert.False(t, CanTransition(OrderTransitions, tc[0], tc[1]),
			"%s -> %s should be rejected", tc[0], tc[1])
	}
}

func TestOrderCancellableBeforeDelivery(t *testing.T) {
	for _, from := range []string{OrderDraft, OrderConfirmed, OrderInProduction, OrderQC} {
		assert.True(t, CanTransition(OrderTransitions, from, OrderCancelled),
			"%s should be cancellable", from)
	}
	for _, from := range []string{OrderDelivered, OrderClosed} {
		assert.False(t, CanTransition(OrderTransitions, from, OrderCancelled),
			"%s should not be cancellable", from)
	}
}

func TestWorkOrderTransitions(t *testing.T) {
	assert.True(t, CanTransition(WorkOrderTransitions, WorkOrderOpen, WorkOrderAssigned))
	assert.True(t, CanTransition(WorkOrderTransitions, WorkOrderAssigned, WorkOrderOpen))
	assert.True(t, CanTransition(WorkOrderTransitions, WorkOrderAssigned, WorkOrderInProgress))
	assert.True(t, CanTransition(WorkOrderTransitions, WorkOrderInProgress, WorkOrderCompleted))

	assert.False(t, CanTransition(WorkOrderTransitions, WorkOrderOpen, WorkOrderCompleted))
	assert.False(t, CanTransition(WorkOrderTransitions, WorkOrderCompleted, WorkOrderOpen))
	assert.False(t, CanTransition(WorkOrderTransitions, WorkOrderCancelled, WorkOrderOpen))
}

func TestDeliveryTransitions(t *testing.T) {
	assert.True(t, CanTransition(DeliveryTransitions, DeliveryScheduled, DeliveryInTransit))
	assert.True(t, CanTransition(DeliveryTransitions, DeliveryInTransit, DeliveryDelivered))
	assert.True(t, CanTransition(DeliveryTransitions, DeliveryInTransit, DeliveryFailed))
	assert.True(t, CanTransition(DeliveryTransitions, DeliveryFailed, DeliveryScheduled),
		"failed deliveries can be rescheduled")

	assert.False(t, CanTransition(DeliveryTransitions, DeliveryScheduled, DeliveryDelivered))
	assert.False(t, CanTransition(DeliveryTransitions, DeliveryDelivered, DeliveryScheduled))
}

func TestInvoiceTransitions(t *testing.T) {
	assert.True(t, CanTransition(InvoiceTransitions, InvoiceDraft, InvoiceSent))
	assert.True(t, CanTransition(InvoiceTransitions, InvoiceSent, InvoicePaid))
	assert.True(t, CanTransition(InvoiceTransitions, InvoiceDraft, InvoiceVoid))
	assert.True(t, CanTransition(InvoiceTransitions, InvoiceSent, InvoiceVoid))

	assert.False(t, CanTransition(InvoiceTransitions, InvoicePaid, InvoiceVoid))
	assert.False(t, CanTransition(InvoiceTransitions, InvoiceDraft, InvoicePaid))
}

func TestRunTransitions(t *testing.T) {
	assert.True(t, CanTransition(RunTransitions, RunPlanned, RunRunning))
	assert.True(t, CanTransition(RunTransitions, RunRunning, RunDone))

	assert.False(t, CanTransition(RunTransitions, RunPlanned, RunDone))
	assert.False(t, CanTransition(RunTransitions, RunDone, RunRunning))
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(OrderTransitions, "UNKNOWN", OrderConfirmed))
	assert.False(t, CanTransition(OrderTransitions, OrderDraft, "UNKNOWN"))
}
