package dto

import "github.com/aarondl/null/v8"

type CreateUserDTO struct {
	FullName string `json:"full_name" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,role"`
}

type UpdateUserDTO struct {
	FullName null.String `json:"full_name,omitempty"`
	Email    null.String `json:"email,omitempty"`
	Role     null.String `json:"role,omitempty"`
	Active   null.Bool   `json:"active,omitempty"`
}

type UserResponseDTO struct {
	ID        uint64 `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}
