package services

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	apperrors "apparel-erp/pkg/errors"
)

// The fakes embed the repository interfaces so only the methods a test
// exercises need an implementation; calling anything else panics and
// fails the test loudly.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeNotificationRepo struct {
	repositories.NotificationRepositoryInterface

	templates     map[uint64]entities.NotificationTemplate
	created       []entities.Notification
	failCreateFor map[uint64]bool
}

func (f *fakeNotificationRepo) FindTemplate(ctx context.Context, workspaceID, id uint64) (*entities.NotificationTemplate, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &tpl, nil
}

func (f *fakeNotificationRepo) CreateNotification(ctx context.Context, n entities.Notification) (uint64, error) {
	if f.failCreateFor[n.RecipientID] {
		return 0, pgx.ErrTxClosed
	}
	f.created = append(f.created, n)
	return uint64(len(f.created)), nil
}

type fakeUserRepo struct {
	repositories.UserRepositoryInterface

	users map[uint64]entities.User
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, workspaceID uint64, ids []uint64) (map[uint64]entities.User, error) {
	found := make(map[uint64]entities.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			found[id] = u
		}
	}
	return found, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, workspaceID uint64, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeWorkspaceRepo struct {
	repositories.WorkspaceRepositoryInterface

	workspace *entities.Workspace
}

func (f *fakeWorkspaceRepo) FindBySlug(ctx context.Context, slug string) (*entities.Workspace, error) {
	if f.workspace == nil || f.workspace.Slug != slug {
		return nil, apperrors.ErrNotFound
	}
	workspace := *f.workspace
	return &workspace, nil
}

// countingCache backs the login lockout counter with a plain map.
type countingCache struct {
	counts map[string]int64
}

func newCountingCache() *countingCache {
	return &countingCache{counts: make(map[string]int64)}
}

func (c *countingCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (c *countingCache) Get(ctx context.Context, key string) (string, error) {
	n, ok := c.counts[key]
	if !ok {
		return "", nil
	}
	return strconv.FormatInt(n, 10), nil
}

func (c *countingCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.counts, key)
	}
	return nil
}

func (c *countingCache) Incr(ctx context.Context, key string) (int64, error) {
	c.counts[key]++
	return c.counts[key], nil
}

func (c *countingCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}

type fakePayrollRepo struct {
	repositories.PayrollRepositoryInterface

	period *entities.PayrollPeriod
	slips  []entities.Payslip
	closed bool
}

func (f *fakePayrollRepo) FindPeriod(ctx context.Context, workspaceID, id uint64) (*entities.PayrollPeriod, error) {
	if f.period == nil || f.period.ID != id {
		return nil, pgx.ErrNoRows
	}
	period := *f.period
	return &period, nil
}

func (f *fakePayrollRepo) ReplacePayslips(ctx context.Context, tx pgx.Tx, periodID uint64, slips []entities.Payslip) error {
	f.slips = append([]entities.Payslip(nil), slips...)
	return nil
}

func (f *fakePayrollRepo) GetPayslips(ctx context.Context, workspaceID, periodID uint64) ([]entities.Payslip, error) {
	return f.slips, nil
}

func (f *fakePayrollRepo) ClosePeriod(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error {
	f.closed = true
	f.period.Status = entities.PayrollPeriodClosed
	return nil
}

type fakeEmployeeRepo struct {
	repositories.EmployeeRepositoryInterface

	employees []entities.Employee
}

func (f *fakeEmployeeRepo) FindActive(ctx context.Context, workspaceID uint64) ([]entities.Employee, error) {
	return f.employees, nil
}

type fakeProductionRepo struct {
	repositories.ProductionRepositoryInterface

	runs        map[uint64]entities.ProductionRun
	pieces      map[uint64]int
	inspections []entities.QCInspection
	wip         []entities.StageProgress
	sampled     int
	defects     int
}

func (f *fakeProductionRepo) FindRun(ctx context.Context, workspaceID, id uint64) (*entities.ProductionRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &run, nil
}

func (f *fakeProductionRepo) AcceptedPiecesByOperator(ctx context.Context, workspaceID uint64, from, to string) (map[uint64]int, error) {
	return f.pieces, nil
}

func (f *fakeProductionRepo) CreateInspection(ctx context.Context, insp entities.QCInspection) (uint64, error) {
	f.inspections = append(f.inspections, insp)
	return uint64(len(f.inspections)), nil
}

func (f *fakeProductionRepo) WIPByStage(ctx context.Context, workspaceID uint64) ([]entities.StageProgress, error) {
	return f.wip, nil
}

func (f *fakeProductionRepo) DefectTotals(ctx context.Context, workspaceID uint64) (int, int, error) {
	return f.sampled, f.defects, nil
}

type fakeDeliveryRepo struct {
	repositories.DeliveryRepositoryInterface

	delivery  *entities.Delivery
	reordered map[uint64]int
	delivered int
	onTime    int
}

func (f *fakeDeliveryRepo) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Delivery, error) {
	if f.delivery == nil || f.delivery.ID != id {
		return nil, pgx.ErrNoRows
	}
	delivery := *f.delivery
	return &delivery, nil
}

func (f *fakeDeliveryRepo) ReorderStops(ctx context.Context, tx pgx.Tx, deliveryID uint64, order map[uint64]int) error {
	f.reordered = order
	return nil
}

func (f *fakeDeliveryRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, status string) error {
	f.delivery.Status = status
	return nil
}

func (f *fakeDeliveryRepo) MarkDelivered(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error {
	f.delivery.Status = "DELIVERED"
	now := time.Now()
	f.delivery.DeliveredAt = &now
	return nil
}

func (f *fakeDeliveryRepo) OnTimeStats(ctx context.Context, workspaceID uint64) (int, int, error) {
	return f.delivered, f.onTime, nil
}

type fakeVehicleRepo struct {
	repositories.VehicleRepositoryInterface
}

type fakeClientRepo struct {
	repositories.ClientRepositoryInterface
}

type fakeAssetRepo struct {
	repositories.AssetRepositoryInterface
}

type fakeScheduleRepo struct {
	repositories.ScheduleRepositoryInterface
}

type fakeSequenceRepo struct {
	repositories.SequenceRepositoryInterface
}

type fakeOrderRepo struct {
	repositories.OrderRepositoryInterface

	countByStatus map[string]int
	order         *entities.Order
	deliveryDate  bool
	deleted       bool
}

func (f *fakeOrderRepo) CountByStatus(ctx context.Context, workspaceID uint64) (map[string]int, error) {
	return f.countByStatus, nil
}

func (f *fakeOrderRepo) FindOrder(ctx context.Context, workspaceID, id uint64) (*entities.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, pgx.ErrNoRows
	}
	order := *f.order
	return &order, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, status string) error {
	f.order.Status = status
	return nil
}

func (f *fakeOrderRepo) SetActualDelivery(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error {
	f.deliveryDate = true
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, workspaceID, id uint64) error {
	f.deleted = true
	return nil
}

type fakeWorkOrderRepo struct {
	repositories.WorkOrderRepositoryInterface

	open      int
	overdue   int
	workOrder *entities.MaintenanceWorkOrder
}

func (f *fakeWorkOrderRepo) OpenAndOverdueCounts(ctx context.Context, workspaceID uint64) (int, int, error) {
	return f.open, f.overdue, nil
}

func (f *fakeWorkOrderRepo) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceWorkOrder, error) {
	if f.workOrder == nil || f.workOrder.ID != id {
		return nil, pgx.ErrNoRows
	}
	wo := *f.workOrder
	return &wo, nil
}

type fakeInvoiceRepo struct {
	repositories.InvoiceRepositoryInterface

	outstanding float64
	debtors     []entities.ClientBalance
	invoice     *entities.Invoice
}

func (f *fakeInvoiceRepo) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Invoice, error) {
	if f.invoice == nil || f.invoice.ID != id {
		return nil, pgx.ErrNoRows
	}
	invoice := *f.invoice
	return &invoice, nil
}

func (f *fakeInvoiceRepo) Outstanding(ctx context.Context, workspaceID uint64) (float64, error) {
	return f.outstanding, nil
}

func (f *fakeInvoiceRepo) TopDebtors(ctx context.Context, workspaceID uint64, limit int) ([]entities.ClientBalance, error) {
	return f.debtors, nil
}

// requireBadRequest asserts that a rejected operation surfaces as a
// 400, the status the transition endpoints document.
func requireBadRequest(t *testing.T, err error) {
	t.Helper()
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}

// fakeCache never has a hit; analytics falls through to a fresh compute.
type fakeCache struct{}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (f *fakeCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (f *fakeCache) Del(ctx context.Context, keys ...string) error       { return nil }
func (f *fakeCache) Incr(ctx context.Context, key string) (int64, error) { return 0, nil }
func (f *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return false, nil
}
