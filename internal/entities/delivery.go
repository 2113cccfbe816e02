package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

type Delivery struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	OrderID     uint64 `json:"order_id" db:"order_id"`

	VehicleID  *uint64 `json:"vehicle_id,omitempty" db:"vehicle_id"`
	DriverName *string `json:"driver_name,omitempty" db:"driver_name"`

	Status      string     `json:"status" db:"status"`
	ScheduledAt time.Time  `json:"scheduled_at" db:"scheduled_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`

	Stops []DeliveryStop `json:"stops,omitempty" db:"-"`

	types.BaseEntity
}

// DeliveryStop is one drop point; Seq is the planned visiting order.
type DeliveryStop struct {
	ID         uint64  `json:"id" db:"id"`
	DeliveryID uint64  `json:"delivery_id" db:"delivery_id"`
	Seq        int     `json:"seq" db:"seq"`
	Address    string  `json:"address" db:"address"`
	Lat        float64 `json:"lat" db:"lat"`
	Lng        float64 `json:"lng" db:"lng"`
}
