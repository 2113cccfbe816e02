package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
)

func runDashboardRouter(secureGroup *echo.Group, ctrl *controllers.DashboardController) {
	secureGroup.GET("/dashboard", ctrl.GetDashboard)
	secureGroup.GET("/dashboard/insights", ctrl.GetInsights)
}
