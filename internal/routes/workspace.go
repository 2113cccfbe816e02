package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runWorkspaceRouter(secureGroup *echo.Group, ctrl *controllers.WorkspaceController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRole(constants.RoleAdmin)

	secureGroup.GET("/workspaces", ctrl.GetWorkspaces, adminOnly)
	secureGroup.GET("/workspace/:id", ctrl.FindWorkspace, adminOnly)
	secureGroup.POST("/workspace", ctrl.CreateWorkspace, adminOnly)
	secureGroup.PUT("/workspace/:id", ctrl.UpdateWorkspace, adminOnly)
}
