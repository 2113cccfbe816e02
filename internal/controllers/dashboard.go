package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"apparel-erp/internal/services"
	"apparel-erp/pkg/utils"
)

type DashboardController struct {
	analyticsService services.AnalyticsServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(analyticsService services.AnalyticsServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{analyticsService: analyticsService, logger: logger}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.analyticsService.Dashboard(reqCtx, workspaceID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "dashboard fetched", http.StatusOK)
}

func (c *DashboardController) GetInsights(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	list, err := c.analyticsService.Insights(reqCtx, workspaceID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "insights fetched", http.StatusOK)
}
