package dto

import "time"

type CreatePayrollPeriodDTO struct {
	Name      string    `json:"name" validate:"required,min=3,max=64"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

// PayslipAdjustmentDTO adds allowances/deductions before a period is
// closed.
type PayslipAdjustmentDTO struct {
	Allowances float64 `json:"allowances" validate:"gte=0"`
	Deductions float64 `json:"deductions" validate:"gte=0"`
}
