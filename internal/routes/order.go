package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runOrderRouter(secureGroup *echo.Group, ctrl *controllers.OrderController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/orders", ctrl.GetOrders)
	secureGroup.GET("/order/:id", ctrl.FindOrder)
	secureGroup.GET("/order/:id/progress", ctrl.GetOrderProgress)
	secureGroup.POST("/order", ctrl.CreateOrder, managers)
	secureGroup.PUT("/order/:id", ctrl.UpdateOrder, managers)
	secureGroup.PUT("/order/:id/status", ctrl.ChangeOrderStatus, managers)
	secureGroup.DELETE("/order/:id", ctrl.DeleteOrder, managers)
}
