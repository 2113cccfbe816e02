package dto

type CreateScheduleDTO struct {
	AssetID      uint64 `json:"asset_id" validate:"required,gt=0"`
	Title        string `json:"title" validate:"required,min=3,max=255"`
	IntervalDays int    `json:"interval_days" validate:"required,gt=0,lte=3650"`
}

type UpdateScheduleDTO struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	IntervalDays *int    `json:"interval_days,omitempty" validate:"omitempty,gt=0,lte=3650"`
	Active       *bool   `json:"active,omitempty"`
}
