package dto

type CreateWorkOrderDTO struct {
	AssetID     uint64  `json:"asset_id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Description *string `json:"description,omitempty"`
	ScheduleID  *uint64 `json:"schedule_id,omitempty" validate:"omitempty,gt=0"`
}

type AssignWorkOrderDTO struct {
	AssigneeID uint64 `json:"assignee_id" validate:"required,gt=0"`
}

type WorkOrderStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

type AddCostLineDTO struct {
	Kind        string  `json:"kind" validate:"required,oneof=LABOR PARTS"`
	Description string  `json:"description" validate:"required,min=2,max=255"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}
