package dto

type CreateVehicleDTO struct {
	PlateNo    string  `json:"plate_no" validate:"required,min=2,max=32"`
	Model      string  `json:"model" validate:"required,min=2,max=128"`
	CapacityKg float64 `json:"capacity_kg" validate:"required,gt=0"`
}

type UpdateVehicleDTO struct {
	Model      *string  `json:"model,omitempty" validate:"omitempty,min=2,max=128"`
	CapacityKg *float64 `json:"capacity_kg,omitempty" validate:"omitempty,gt=0"`
	Active     *bool    `json:"active,omitempty"`
}
