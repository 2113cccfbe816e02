package dto

type CreateClientDTO struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
}

type UpdateClientDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
}
