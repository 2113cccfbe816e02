package entities

import (
	"time"

	"apparel-erp/pkg/types"
)

type Invoice struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	OrderID     uint64 `json:"order_id" db:"order_id"`
	ClientID    uint64 `json:"client_id" db:"client_id"`

	Number string  `json:"number" db:"number"`
	Amount float64 `json:"amount" db:"amount"`
	Status string  `json:"status" db:"status"`

	IssuedAt *time.Time `json:"issued_at,omitempty" db:"issued_at"`
	PaidAt   *time.Time `json:"paid_at,omitempty" db:"paid_at"`

	types.BaseEntity
}

// ClientBalance is the AR rollup used by the dashboard.
type ClientBalance struct {
	ClientID    uint64  `json:"client_id"`
	ClientName  string  `json:"client_name"`
	Outstanding float64 `json:"outstanding"`
}
