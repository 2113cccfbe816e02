package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runEmployeeRouter(secureGroup *echo.Group, ctrl *controllers.EmployeeController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/employees", ctrl.GetEmployees)
	secureGroup.GET("/employee/:id", ctrl.FindEmployee)
	secureGroup.POST("/employee", ctrl.CreateEmployee, managers)
	secureGroup.PUT("/employee/:id", ctrl.UpdateEmployee, managers)
	secureGroup.DELETE("/employee/:id", ctrl.DeactivateEmployee, managers)
}
