package events

import "encoding/json"

const (
	OrderStatusChangedName = "order.status_changed"
	WorkOrderAssignedName  = "work_order.assigned"
	EntityMutatedName      = "entity.mutated"
)

// OrderStatusChanged fires after an order transition commits.
type OrderStatusChanged struct {
	WorkspaceID uint64
	ActorID     uint64
	OrderID     uint64
	PONumber    string
	From        string
	To          string
}

func (e OrderStatusChanged) Name() string { return OrderStatusChangedName }

// WorkOrderAssigned fires when a maintenance work order gets an assignee.
type WorkOrderAssigned struct {
	WorkspaceID uint64
	ActorID     uint64
	WorkOrderID uint64
	Code        string
	AssigneeID  uint64
}

func (e WorkOrderAssigned) Name() string { return WorkOrderAssignedName }

// EntityMutated carries before/after snapshots for the audit trail.
type EntityMutated struct {
	WorkspaceID uint64
	ActorID     uint64
	EntityType  string
	EntityID    uint64
	Action      string
	Before      json.RawMessage
	After       json.RawMessage
	BatchID     string
}

func (e EntityMutated) Name() string { return EntityMutatedName }
