package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

type Employee struct {
	ID          uint64  `json:"id" db:"id"`
	WorkspaceID uint64  `json:"workspace_id" db:"workspace_id"`
	UserID      *uint64 `json:"user_id,omitempty" db:"user_id"`

	FullName   string `json:"full_name" db:"full_name"`
	Department string `json:"department" db:"department"`
	Position   string `json:"position" db:"position"`

	// SALARIED employees are paid BaseSalary per period; PIECE_RATE
	// employees earn PieceRate per accepted piece.
	PayScheme  string  `json:"pay_scheme" db:"pay_scheme"`
	BaseSalary float64 `json:"base_salary" db:"base_salary"`
	PieceRate  float64 `json:"piece_rate" db:"piece_rate"`

	HiredAt *time.Time `json:"hired_at,omitempty" db:"hired_at"`
	Active  bool       `json:"active" db:"active"`

	types.BaseEntity
}
