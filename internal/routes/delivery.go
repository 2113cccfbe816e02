package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runDeliveryRouter(secureGroup *echo.Group, ctrl *controllers.DeliveryController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)
	// Drivers are OPERATOR users; they push status along the route.
	floor := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager, constants.RoleOperator)

	secureGroup.GET("/deliveries", ctrl.GetDeliveries)
	secureGroup.GET("/delivery/:id", ctrl.FindDelivery)
	secureGroup.POST("/delivery", ctrl.CreateDelivery, managers)
	secureGroup.PUT("/delivery/:id/status", ctrl.ChangeDeliveryStatus, floor)
	secureGroup.POST("/delivery/:id/plan-route", ctrl.PlanRoute, managers)
}
