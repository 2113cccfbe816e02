package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	"apparel-erp/internal/services"
	"apparel-erp/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetOrderBook(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	format := strings.ToLower(ctx.QueryParam("format"))
	if format == "xlsx" {
		// Exports ignore pagination and dump the whole book.
		filter.Limit = 100000
		filter.Offset = 0
	}

	rows, total, err := c.reportService.OrderBook(reqCtx, workspaceID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.orderBookXLSX(ctx, rows)
	}
	return utils.SuccessResponse(ctx, rows, "order book fetched", http.StatusOK, total)
}

var orderBookHeaders = []string{
	"PO Number", "Client", "Product", "Status", "Qty", "Unit Price", "Total Value",
	"Target Delivery", "Actual Delivery", "Stage Progress",
}

func orderBookRowToSlice(row services.OrderBookRow) []interface{} {
	dateFmt := "02.01.2006"
	var client, target, actual string
	if row.Order.Client != nil {
		client = row.Order.Client.Name
	}
	if row.Order.TargetDeliveryDate != nil {
		target = row.Order.TargetDeliveryDate.Format(dateFmt)
	}
	if row.Order.ActualDeliveryDate != nil {
		actual = row.Order.ActualDeliveryDate.Format(dateFmt)
	}

	stages := make([]string, 0, len(row.Progress))
	for _, p := range row.Progress {
		stages = append(stages, fmt.Sprintf("%s %d/%d", p.Stage, p.ActualQty, p.PlannedQty))
	}

	return []interface{}{
		row.Order.PONumber, client, row.Order.ProductType, row.Order.Status,
		row.Order.TotalQty, row.Order.UnitPrice, row.Order.TotalValue,
		target, actual, strings.Join(stages, "; "),
	}
}

func (c *ReportController) orderBookXLSX(ctx echo.Context, rows []services.OrderBookRow) error {
	f := excelize.NewFile()
	sheet := "Order Book"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &orderBookHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		vals := orderBookRowToSlice(row)
		f.SetSheetRow(sheet, cell, &vals)
	}
	f.SetColWidth(sheet, "A", "B", 22)
	f.SetColWidth(sheet, "C", "D", 18)
	f.SetColWidth(sheet, "H", "I", 16)
	f.SetColWidth(sheet, "J", "J", 50)

	fileName := fmt.Sprintf("order_book_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *ReportController) GetPayrollRegister(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	workspaceID, err := utils.WorkspaceIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	periodID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	period, payslips, err := c.reportService.PayrollRegister(reqCtx, workspaceID, periodID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if strings.ToLower(ctx.QueryParam("format")) == "xlsx" {
		return c.payrollRegisterXLSX(ctx, period, payslips)
	}
	return utils.SuccessResponse(ctx, map[string]interface{}{
		"period":   period,
		"payslips": payslips,
	}, "payroll register fetched", http.StatusOK)
}

var payrollHeaders = []string{
	"Employee", "Pay Scheme", "Pieces", "Base", "Piece Amount", "Allowances", "Deductions", "Net",
}

func payslipToSlice(p entities.Payslip) []interface{} {
	var name, scheme string
	if p.Employee != nil {
		name = p.Employee.FullName
		scheme = p.Employee.PayScheme
	}
	return []interface{}{
		name, scheme, p.Pieces, p.BaseAmount, p.PieceAmount, p.Allowances, p.Deductions, p.NetAmount,
	}
}

func (c *ReportController) payrollRegisterXLSX(ctx echo.Context, period *entities.PayrollPeriod, payslips []entities.Payslip) error {
	f := excelize.NewFile()
	sheet := period.Name
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &payrollHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	var total float64
	for i, p := range payslips {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		vals := payslipToSlice(p)
		f.SetSheetRow(sheet, cell, &vals)
		total += p.NetAmount
	}
	totalCell, _ := excelize.CoordinatesToCellName(7, len(payslips)+2)
	totalRow := []interface{}{"TOTAL", total}
	f.SetSheetRow(sheet, totalCell, &totalRow)
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "H", 14)

	fileName := fmt.Sprintf("payroll_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
