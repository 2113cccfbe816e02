package entities

import "apparel-erp/pkg/types"

type User struct {
	ID          uint64 `json:"id" db:"id"`
	WorkspaceID uint64 `json:"workspace_id" db:"workspace_id"`
	FullName    string `json:"full_name" db:"full_name"`
	Email       string `json:"email" db:"email"`

	Password string `json:"-" db:"password"`

	// One of constants.Roles.
	Role   string `json:"role" db:"role"`
	Active bool   `json:"active" db:"active"`

	types.BaseEntity
}
