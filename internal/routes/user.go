package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRole(constants.RoleAdmin)

	secureGroup.GET("/users", ctrl.GetUsers)
	secureGroup.GET("/user/:id", ctrl.FindUser)
	secureGroup.POST("/user", ctrl.CreateUser, adminOnly)
	secureGroup.PUT("/user/:id", ctrl.UpdateUser, adminOnly)
	secureGroup.DELETE("/user/:id", ctrl.DeactivateUser, adminOnly)
}
