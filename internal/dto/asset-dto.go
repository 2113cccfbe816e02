package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateAssetDTO struct {
	Name         string     `json:"name" validate:"required,min=2,max=255"`
	Category     string     `json:"category" validate:"required,min=2,max=128"`
	Location     *string    `json:"location,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
}

type UpdateAssetDTO struct {
	Name     null.String `json:"name,omitempty"`
	Category null.String `json:"category,omitempty"`
	Location null.String `json:"location,omitempty"`
	Status   null.String `json:"status,omitempty"`
}
