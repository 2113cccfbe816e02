package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runInvoiceRouter(secureGroup *echo.Group, ctrl *controllers.InvoiceController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/invoices", ctrl.GetInvoices)
	secureGroup.GET("/invoice/:id", ctrl.FindInvoice)
	secureGroup.POST("/invoice", ctrl.CreateInvoice, managers)
	secureGroup.PUT("/invoice/:id/status", ctrl.ChangeInvoiceStatus, managers)
}
