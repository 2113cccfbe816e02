package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runProductionRouter(secureGroup *echo.Group, ctrl *controllers.ProductionController, authMW *middleware.AuthMiddleware) {
	// Operators record run progress and inspections on the floor.
	floor := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager, constants.RoleOperator)
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/production/runs", ctrl.GetRuns)
	secureGroup.GET("/production/run/:id", ctrl.FindRun)
	secureGroup.POST("/production/run", ctrl.CreateRun, managers)
	secureGroup.PUT("/production/run/:id", ctrl.UpdateRun, floor)

	secureGroup.GET("/qc/inspections", ctrl.GetInspections)
	secureGroup.POST("/qc/inspection", ctrl.CreateInspection, floor)
}
