package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runVehicleRouter(secureGroup *echo.Group, ctrl *controllers.VehicleController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/vehicles", ctrl.GetVehicles)
	secureGroup.GET("/vehicle/:id", ctrl.FindVehicle)
	secureGroup.POST("/vehicle", ctrl.CreateVehicle, managers)
	secureGroup.PUT("/vehicle/:id", ctrl.UpdateVehicle, managers)
	secureGroup.DELETE("/vehicle/:id", ctrl.DeactivateVehicle, managers)
}
