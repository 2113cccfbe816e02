package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runClientRouter(secureGroup *echo.Group, ctrl *controllers.ClientController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/clients", ctrl.GetClients)
	secureGroup.GET("/client/:id", ctrl.FindClient)
	secureGroup.POST("/client", ctrl.CreateClient, managers)
	secureGroup.PUT("/client/:id", ctrl.UpdateClient, managers)
	secureGroup.DELETE("/client/:id", ctrl.DeleteClient, managers)
}
