package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runAssetRouter(secureGroup *echo.Group, ctrl *controllers.AssetController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/assets", ctrl.GetAssets)
	secureGroup.GET("/asset/:id", ctrl.FindAsset)
	secureGroup.POST("/asset", ctrl.CreateAsset, managers)
	secureGroup.PUT("/asset/:id", ctrl.UpdateAsset, managers)
}
