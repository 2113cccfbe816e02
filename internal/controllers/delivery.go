package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/services"
	"apparel-erp/pkg/utils"
)

type DeliveryController struct {
	deliveryService services.DeliveryServiceInterface
	logger          *zap.Logger
}

func NewDeliveryController(deliveryService services.DeliveryServiceInterface, logger *zap.Logger) *DeliveryController {
	return &DeliveryController{deliveryService: deliveryService, logger: logger}
}

func (c *DeliveryController) GetDeliveries(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.deliveryService.GetDeliveries(reqCtx, workspaceID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "deliveries fetched", http.StatusOK, total)
}

func (c *DeliveryController) FindDelivery(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deliveryService.FindByID(reqCtx, workspaceID, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "delivery found", http.StatusOK)
}

func (c *DeliveryController) CreateDelivery(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateDeliveryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deliveryService.Create(reqCtx, workspaceID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "delivery created", http.StatusCreated)
}

func (c *DeliveryController) ChangeDeliveryStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.DeliveryStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deliveryService.ChangeStatus(reqCtx, workspaceID, id, payload.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "delivery status changed", http.StatusOK)
}

func (c *DeliveryController) PlanRoute(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.PlanRouteDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deliveryService.PlanRoute(reqCtx, workspaceID, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "route planned", http.StatusOK)
}
