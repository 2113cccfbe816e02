package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runWorkOrderRouter(secureGroup *echo.Group, ctrl *controllers.WorkOrderController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)
	// Assignees move their own work orders through the status graph.
	floor := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager, constants.RoleOperator)

	secureGroup.GET("/work-orders", ctrl.GetWorkOrders)
	secureGroup.GET("/work-order/:id", ctrl.FindWorkOrder)
	secureGroup.POST("/work-order", ctrl.CreateWorkOrder, managers)
	secureGroup.PUT("/work-order/:id/assign", ctrl.AssignWorkOrder, managers)
	secureGroup.PUT("/work-order/:id/status", ctrl.ChangeWorkOrderStatus, floor)
	secureGroup.POST("/work-order/:id/cost-line", ctrl.AddCostLine, floor)
	secureGroup.GET("/work-order/:id/cost-lines", ctrl.GetCostLines)
	secureGroup.POST("/work-orders/generate-due", ctrl.GenerateFromDueSchedules, managers)
}
