package entities

import "apparel-erp/pkg/types"

type Vehicle struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`

	PlateNo    string  `json:"plate_no" db:"plate_no"`
	Model      string  `json:"model" db:"model"`
	CapacityKg float64 `json:"capacity_kg" db:"capacity_kg"`
	Active     bool    `json:"active" db:"active"`

	types.BaseEntity
}
