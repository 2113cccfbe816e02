package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateEmployeeDTO struct {
	FullName   string     `json:"full_name" validate:"required,min=3,max=255"`
	Department string     `json:"department" validate:"required,min=2,max=128"`
	Position   string     `json:"position" validate:"required,min=2,max=128"`
	PayScheme  string     `json:"pay_scheme" validate:"required,oneof=SALARIED PIECE_RATE"`
	BaseSalary float64    `json:"base_salary" validate:"gte=0"`
	PieceRate  float64    `json:"piece_rate" validate:"gte=0"`
	UserID     *uint64    `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
}

type UpdateEmployeeDTO struct {
	FullName   null.String  `json:"full_name,omitempty"`
	Department null.String  `json:"department,omitempty"`
	Position   null.String  `json:"position,omitempty"`
	PayScheme  null.String  `json:"pay_scheme,omitempty"`
	BaseSalary null.Float64 `json:"base_salary,omitempty"`
	PieceRate  null.Float64 `json:"piece_rate,omitempty"`
	Active     null.Bool    `json:"active,omitempty"`
}
