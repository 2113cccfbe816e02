package dto

import "apparel-erp/internal/entities"

// DashboardDTO is the workspace overview served to the main screen.
type DashboardDTO struct {
	OrdersByStatus     map[string]int           `json:"orders_by_status"`
	WIPByStage         []entities.StageProgress `json:"wip_by_stage"`
	QCDefectRate       float64                  `json:"qc_defect_rate"`
	OpenWorkOrders     int                      `json:"open_work_orders"`
	OverdueWorkOrders  int                      `json:"overdue_work_orders"`
	OnTimeDeliveryRate float64                  `json:"on_time_delivery_rate"`
	AROutstanding      float64                  `json:"ar_outstanding"`
	TopDebtors         []entities.ClientBalance `json:"top_debtors"`
}

// InsightDTO is one rule-based finding over the dashboard aggregates.
type InsightDTO struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}
