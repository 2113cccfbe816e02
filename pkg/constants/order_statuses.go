package constants

// Order lifecycle.
const (
	OrderDraft        = "DRAFT"
	OrderConfirmed    = "CONFIRMED"
	OrderInProduction = "IN_PRODUCTION"
	OrderQC           = "QC"
	OrderDelivered    = "DELIVERED"
	OrderClosed       = "CLOSED"
	OrderCancelled    = "CANCELLED"
)

// OrderTransitions is the allowed status graph. Every status may also
// move to CANCELLED until the order is closed.
var OrderTransitions = map[string][]string{
	OrderDraft:        {OrderConfirmed, OrderCancelled},
	OrderConfirmed:    {OrderInProduction, OrderCancelled},
	OrderInProduction: {OrderQC, OrderCancelled},
	OrderQC:           {OrderInProduction, OrderDelivered, OrderCancelled},
	OrderDelivered:    {OrderClosed},
	OrderClosed:       {},
	OrderCancelled:    {},
}

// Maintenance work order lifecycle.
const (
	WorkOrderOpen       = "OPEN"
	WorkOrderAssigned   = "ASSIGNED"
	WorkOrderInProgress = "IN_PROGRESS"
	WorkOrderCompleted  = "COMPLETED"
	WorkOrderCancelled  = "CANCELLED"
)

var WorkOrderTransitions = map[string][]string{
	WorkOrderOpen:       {WorkOrderAssigned, WorkOrderCancelled},
	WorkOrderAssigned:   {WorkOrderInProgress, WorkOrderOpen, WorkOrderCancelled},
	WorkOrderInProgress: {WorkOrderCompleted, WorkOrderCancelled},
	WorkOrderCompleted:  {},
	WorkOrderCancelled:  {},
}

// Production run lifecycle.
const (
	RunPlanned = "PLANNED"
	RunRunning = "RUNNING"
	RunDone    = "DONE"
)

var RunTransitions = map[string][]string{
	RunPlanned: {RunRunning},
	RunRunning: {RunDone},
	RunDone:    {},
}

// Delivery lifecycle.
const (
	DeliveryScheduled = "SCHEDULED"
	DeliveryInTransit = "IN_TRANSIT"
	DeliveryDelivered = "DELIVERED"
	DeliveryFailed    = "FAILED"
)

var DeliveryTransitions = map[string][]string{
	DeliveryScheduled: {DeliveryInTransit, DeliveryFailed},
	DeliveryInTransit: {DeliveryDelivered, DeliveryFailed},
	DeliveryDelivered: {},
	DeliveryFailed:    {DeliveryScheduled},
}

// Invoice lifecycle.
const (
	InvoiceDraft = "DRAFT"
	InvoiceSent  = "SENT"
	InvoicePaid  = "PAID"
	InvoiceVoid  = "VOID"
)

var InvoiceTransitions = map[string][]string{
	InvoiceDraft: {InvoiceSent, InvoiceVoid},
	InvoiceSent:  {InvoicePaid, InvoiceVoid},
	InvoicePaid:  {},
	InvoiceVoid:  {},
}

// CanTransition reports whether moving from one status to another is
// allowed under the given graph. Unknown source statuses are rejected.
func CanTransition(graph map[string][]string, from, to string) bool {
	for _, next := range graph[from] {
		if next == to {
			return true
		}
	}
	return false
}
