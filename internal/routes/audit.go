package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runAuditRouter(secureGroup *echo.Group, ctrl *controllers.AuditController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/audit-logs", ctrl.GetLogs, authMW.RequireRole(constants.RoleAdmin, constants.RoleManager))
}
