package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"apparel-erp/internal/controllers"
	"apparel-erp/internal/listeners"
	"apparel-erp/internal/repositories"
	"apparel-erp/internal/services"
	"apparel-erp/pkg/config"
	"apparel-erp/pkg/eventbus"
	"apparel-erp/pkg/middleware"
	"apparel-erp/pkg/service"
)

// InitRouter builds the whole dependency graph and mounts every route
// group under /api. Auth routes are public; everything else sits
// behind the bearer-token middleware.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)
	bus := eventbus.New(logger)

	// repositories
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	workspaceRepo := repositories.NewWorkspaceRepository(dbConn, logger)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	clientRepo := repositories.NewClientRepository(dbConn)
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	productionRepo := repositories.NewProductionRepository(dbConn, logger)
	employeeRepo := repositories.NewEmployeeRepository(dbConn, logger)
	payrollRepo := repositories.NewPayrollRepository(dbConn, logger)
	assetRepo := repositories.NewAssetRepository(dbConn, logger)
	workOrderRepo := repositories.NewWorkOrderRepository(dbConn, logger)
	scheduleRepo := repositories.NewScheduleRepository(dbConn)
	vehicleRepo := repositories.NewVehicleRepository(dbConn)
	deliveryRepo := repositories.NewDeliveryRepository(dbConn, logger)
	invoiceRepo := repositories.NewInvoiceRepository(dbConn, logger)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	auditRepo := repositories.NewAuditRepository(dbConn)
	sequenceRepo := repositories.NewSequenceRepository(dbConn)

	// services
	authService := services.NewAuthService(userRepo, workspaceRepo, cacheRepo, jwtSvc, logger,
		cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutDuration)
	workspaceService := services.NewWorkspaceService(workspaceRepo, logger)
	userService := services.NewUserService(userRepo, logger)
	clientService := services.NewClientService(clientRepo)
	orderService := services.NewOrderService(orderRepo, clientRepo, txManager, bus, logger)
	productionService := services.NewProductionService(productionRepo, orderRepo, logger)
	employeeService := services.NewEmployeeService(employeeRepo, logger)
	payrollService := services.NewPayrollService(payrollRepo, employeeRepo, productionRepo, txManager, logger)
	assetService := services.NewAssetService(assetRepo, sequenceRepo, txManager, logger)
	workOrderService := services.NewWorkOrderService(workOrderRepo, assetRepo, scheduleRepo, sequenceRepo, txManager, bus, logger)
	scheduleService := services.NewScheduleService(scheduleRepo, assetRepo)
	vehicleService := services.NewVehicleService(vehicleRepo)
	deliveryService := services.NewDeliveryService(deliveryRepo, vehicleRepo, orderRepo, txManager, logger)
	invoiceService := services.NewInvoiceService(invoiceRepo, orderRepo, sequenceRepo, txManager, logger)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, logger)
	auditService := services.NewAuditService(auditRepo)
	analyticsService := services.NewAnalyticsService(orderRepo, productionRepo, workOrderRepo, deliveryRepo, invoiceRepo, cacheRepo, logger)
	reportService := services.NewReportService(orderRepo, productionRepo, payrollRepo, logger)

	// event listeners
	listeners.NewAuditListener(auditRepo, logger).Register(bus)
	listeners.NewNotificationListener(notificationService, userRepo, logger).Register(bus)

	// controllers
	authController := controllers.NewAuthController(authService, logger)
	workspaceController := controllers.NewWorkspaceController(workspaceService, logger)
	userController := controllers.NewUserController(userService, logger)
	clientController := controllers.NewClientController(clientService, logger)
	orderController := controllers.NewOrderController(orderService, productionService, logger)
	productionController := controllers.NewProductionController(productionService, logger)
	employeeController := controllers.NewEmployeeController(employeeService, logger)
	payrollController := controllers.NewPayrollController(payrollService, logger)
	assetController := controllers.NewAssetController(assetService, logger)
	workOrderController := controllers.NewWorkOrderController(workOrderService, logger)
	scheduleController := controllers.NewScheduleController(scheduleService, logger)
	vehicleController := controllers.NewVehicleController(vehicleService, logger)
	deliveryController := controllers.NewDeliveryController(deliveryService, logger)
	invoiceController := controllers.NewInvoiceController(invoiceService, logger)
	notificationController := controllers.NewNotificationController(notificationService, logger)
	auditController := controllers.NewAuditController(auditService, logger)
	dashboardController := controllers.NewDashboardController(analyticsService, logger)
	reportController := controllers.NewReportController(reportService, logger)

	runAuthRouter(api, authController)

	secureGroup := api.Group("", authMW.Auth)
	runWorkspaceRouter(secureGroup, workspaceController, authMW)
	runUserRouter(secureGroup, userController, authMW)
	runClientRouter(secureGroup, clientController, authMW)
	runOrderRouter(secureGroup, orderController, authMW)
	runProductionRouter(secureGroup, productionController, authMW)
	runEmployeeRouter(secureGroup, employeeController, authMW)
	runPayrollRouter(secureGroup, payrollController, authMW)
	runAssetRouter(secureGroup, assetController, authMW)
	runWorkOrderRouter(secureGroup, workOrderController, authMW)
	runScheduleRouter(secureGroup, scheduleController, authMW)
	runVehicleRouter(secureGroup, vehicleController, authMW)
	runDeliveryRouter(secureGroup, deliveryController, authMW)
	runInvoiceRouter(secureGroup, invoiceController, authMW)
	runNotificationRouter(secureGroup, notificationController, authMW)
	runAuditRouter(secureGroup, auditController, authMW)
	runDashboardRouter(secureGroup, dashboardController)
	runReportRouter(secureGroup, reportController, authMW)
}
