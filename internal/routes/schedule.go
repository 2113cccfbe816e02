package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runScheduleRouter(secureGroup *echo.Group, ctrl *controllers.ScheduleController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/schedules", ctrl.GetSchedules)
	secureGroup.GET("/schedules/due", ctrl.GetDueSchedules)
	secureGroup.GET("/schedule/:id", ctrl.FindSchedule)
	secureGroup.POST("/schedule", ctrl.CreateSchedule, managers)
	secureGroup.PUT("/schedule/:id", ctrl.UpdateSchedule, managers)
}
