package dto

type CreateInvoiceDTO struct {
	OrderID uint64 `json:"order_id" validate:"required,gt=0"`
	// Amount defaults to the order's total value when omitted.
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
}

type InvoiceStatusDTO struct {
	Status string `json:"status" validate:"required"`
}
