package dto

type CreateProductionRunDTO struct {
	OrderID    uint64  `json:"order_id" validate:"required,gt=0"`
	Stage      string  `json:"stage" validate:"required,production_stage"`
	AssetID    *uint64 `json:"asset_id,omitempty" validate:"omitempty,gt=0"`
	OperatorID *uint64 `json:"operator_id,omitempty" validate:"omitempty,gt=0"`
	PlannedQty int     `json:"planned_qty" validate:"required,gt=0"`
}

type UpdateProductionRunDTO struct {
	AssetID    *uint64 `json:"asset_id,omitempty" validate:"omitempty,gt=0"`
	OperatorID *uint64 `json:"operator_id,omitempty" validate:"omitempty,gt=0"`
	PlannedQty *int    `json:"planned_qty,omitempty" validate:"omitempty,gt=0"`
	ActualQty  *int    `json:"actual_qty,omitempty" validate:"omitempty,gte=0"`
	Status     *string `json:"status,omitempty"`
}

type CreateQCInspectionDTO struct {
	RunID         uint64         `json:"run_id" validate:"required,gt=0"`
	SampledQty    int            `json:"sampled_qty" validate:"required,gt=0"`
	DefectReasons map[string]int `json:"defect_reasons" validate:"required"`
	Notes         *string        `json:"notes,omitempty"`
}
