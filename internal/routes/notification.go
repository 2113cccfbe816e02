package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runNotificationRouter(secureGroup *echo.Group, ctrl *controllers.NotificationController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/notification-templates", ctrl.GetTemplates, managers)
	secureGroup.POST("/notification-template", ctrl.CreateTemplate, managers)
	secureGroup.PUT("/notification-template/:id", ctrl.UpdateTemplate, managers)
	secureGroup.POST("/notifications/dispatch", ctrl.Dispatch, managers)

	secureGroup.GET("/notifications", ctrl.GetMyNotifications)
	secureGroup.PUT("/notification/:id/read", ctrl.MarkRead)
	secureGroup.GET("/notifications/unread-count", ctrl.UnreadCount)
}
