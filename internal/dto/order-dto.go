package dto

import "time"

type CreateOrderDTO struct {
	ClientID           uint64     `json:"client_id" validate:"required,gt=0"`
	PONumber           string     `json:"po_number" validate:"required,po_number"`
	ProductType        string     `json:"product_type" validate:"required,min=2,max=128"`
	Description        *string    `json:"description,omitempty"`
	TotalQty           int        `json:"total_qty" validate:"required,gt=0"`
	UnitPrice          float64    `json:"unit_price" validate:"required,gt=0"`
	TargetDeliveryDate *time.Time `json:"target_delivery_date,omitempty"`
}

type UpdateOrderDTO struct {
	ClientID           *uint64    `json:"client_id,omitempty" validate:"omitempty,gt=0"`
	ProductType        *string    `json:"product_type,omitempty" validate:"omitempty,min=2,max=128"`
	Description        *string    `json:"description,omitempty"`
	TotalQty           *int       `json:"total_qty,omitempty" validate:"omitempty,gt=0"`
	UnitPrice          *float64   `json:"unit_price,omitempty" validate:"omitempty,gt=0"`
	TargetDeliveryDate *time.Time `json:"target_delivery_date,omitempty"`
}

type OrderStatusDTO struct {
	Status string `json:"status" validate:"required"`
}
