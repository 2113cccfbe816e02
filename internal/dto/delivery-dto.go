package dto

import "time"

type DeliveryStopDTO struct {
	Address string  `json:"address" validate:"required,min=3"`
	Lat     float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng     float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

type CreateDeliveryDTO struct {
	OrderID     uint64            `json:"order_id" validate:"required,gt=0"`
	VehicleID   *uint64           `json:"vehicle_id,omitempty" validate:"omitempty,gt=0"`
	DriverName  *string           `json:"driver_name,omitempty"`
	ScheduledAt time.Time         `json:"scheduled_at" validate:"required"`
	Stops       []DeliveryStopDTO `json:"stops" validate:"required,min=1,dive"`
}

type DeliveryStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

// PlanRouteDTO is the depot the nearest-neighbour plan starts from.
type PlanRouteDTO struct {
	DepotLat float64 `json:"depot_lat" validate:"gte=-90,lte=90"`
	DepotLng float64 `json:"depot_lng" validate:"gte=-180,lte=180"`
}
