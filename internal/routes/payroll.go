package routes

import (
	"github.com/labstack/echo/v4"

	"apparel-erp/internal/controllers"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/middleware"
)

func runPayrollRouter(secureGroup *echo.Group, ctrl *controllers.PayrollController, authMW *middleware.AuthMiddleware) {
	managers := authMW.RequireRole(constants.RoleAdmin, constants.RoleManager)

	secureGroup.GET("/payroll/periods", ctrl.GetPeriods)
	secureGroup.GET("/payroll/period/:id", ctrl.FindPeriod)
	secureGroup.POST("/payroll/period", ctrl.CreatePeriod, managers)
	secureGroup.POST("/payroll/period/:id/generate", ctrl.GeneratePayslips, managers)
	secureGroup.GET("/payroll/period/:id/payslips", ctrl.GetPayslips)
	secureGroup.PUT("/payroll/payslip/:id", ctrl.AdjustPayslip, managers)
	secureGroup.POST("/payroll/period/:id/close", ctrl.ClosePeriod, managers)
}
