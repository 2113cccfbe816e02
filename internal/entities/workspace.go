package entities

import "apparel-erp/pkg/types"

// Workspace is the tenant root; almost every other row carries its id.
type Workspace struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`

	types.BaseEntity
}
