package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

const (
	PayrollPeriodOpen   = "OPEN"
	PayrollPeriodClosed = "CLOSED"
)

type PayrollPeriod struct {
	ID          uint64    `json:"id" db:"id"`
	WorkspaceID uint64    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Status      string    `json:"status" db:"status"`

	types.BaseEntity
}

// Payslip is generated per employee per period. NetAmount must always
// equal BaseAmount + PieceAmount + Allowances - Deductions.
type Payslip struct {
	ID         uint64 `json:"id" db:"id"`
	PeriodID   uint64 `json:"period_id" db:"period_id"`
	EmployeeID uint64 `json:"employee_id" db:"employee_id"`

	Pieces      int     `json:"pieces" db:"pieces"`
	BaseAmount  float64 `json:"base_amount" db:"base_amount"`
	PieceAmount float64 `json:"piece_amount" db:"piece_amount"`
	Allowances  float64 `json:"allowances" db:"allowances"`
	Deductions  float64 `json:"deductions" db:"deductions"`
	NetAmount   float64 `json:"net_amount" db:"net_amount"`

	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`

	Employee *Employee `json:"employee,omitempty" db:"-"`
}
