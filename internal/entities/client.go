package entities

import "apparel-erp/pkg/types"

type Client struct {
	ID          uint64  `json:"id" db:"id"`
	WorkspaceID uint64  `json:"workspace_id" db:"workspace_id"`
	Name        string  `json:"name" db:"name"`
	ContactName *string `json:"contact_name,omitempty" db:"contact_name"`
	Email       *string `json:"email,omitempty" db:"email"`
	PhoneNumber *string `json:"phone_number,omitempty" db:"phone_number"`
	Address     *string `json:"address,omitempty" db:"address"`

	types.BaseEntity
}
