package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/config"
	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/internal/presentation/http/handler"
	"github.com/sangkips/restopos/internal/presentation/http/middleware"
	"github.com/sangkips/restopos/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Profile    *handler.ProfileHandler
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Sale       *handler.SaleHandler
	Session    *handler.SessionHandler
	Staff      *handler.StaffHandler
	Report     *handler.ReportHandler
	Purchase   *handler.PurchaseHandler
	Expense    *handler.ExpenseHandler
	Preference *handler.PreferenceHandler
	Assistant  *handler.AssistantHandler
	Printer    *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Permissions     middleware.PermissionSource
	Log             *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.RecoveryMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	health := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "ok",
			"service":  deps.Cfg.App.Name,
			"terminal": deps.Cfg.App.TerminalID,
		})
	}
	router.GET("/health", health)

	limits := deps.Cfg.RateLimit
	clientLimiter := middleware.NewClientRateLimiter(middleware.PerWindow(limits.Requests, limits.Duration))
	assistantLimiter := middleware.NewClientRateLimiter(middleware.PerWindow(limits.AssistantRequests, limits.AssistantDuration))

	v1 := router.Group("/api/v1")
	v1.Use(clientLimiter.Middleware())
	{
		v1.GET("/health", health)

		// Lock screen
		v1.GET("/profiles", h.Profile.List)
		v1.POST("/auth/unlock", h.Profile.Unlock)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerPOSRoutes(protected, h, deps)
		registerInventoryRoutes(protected, h, deps)
		registerStaffRoutes(protected, h, deps)
		registerReportRoutes(protected, h, deps, assistantLimiter)
		registerSettingsRoutes(protected, h, deps)
	}

	return router
}

func registerPOSRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Sales are readable by the kitchen screen too
	protected.GET("/sales", h.Sale.List)
	protected.GET("/sales/:id", h.Sale.Get)
	protected.PUT("/sales/:id/preparation",
		middleware.RequireArea(deps.Permissions, service.PermKitchen), h.Sale.UpdatePreparation)

	pos := protected.Group("")
	pos.Use(middleware.RequireArea(deps.Permissions, service.PermPOS))

	carts := pos.Group("/carts")
	{
		carts.GET("", h.Cart.ListOccupied)
		carts.GET("/:location", h.Cart.Get)
		carts.DELETE("/:location", h.Cart.Clear)
		carts.POST("/:location/items", h.Cart.AddItem)
		carts.PATCH("/:location/items/:product_id", h.Cart.AdjustItem)
		carts.DELETE("/:location/items/:product_id", h.Cart.RemoveItem)
		carts.POST("/:location/transfer", h.Cart.Transfer)
		carts.POST("/:location/settle",
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Log: deps.Log}),
			h.Cart.Settle)
	}

	sales := pos.Group("/sales")
	{
		sales.POST("", h.Sale.Create)
		sales.PUT("/:id/status", h.Sale.UpdateStatus)
		sales.POST("/:id/refund", h.Sale.Refund)
		sales.POST("/:id/print", h.Printer.PrintReceipt)
		sales.GET("/:id/invoice.pdf", h.Sale.Invoice)
	}

	pos.GET("/cash/denominations", h.Session.Denominations)
	pos.POST("/cash/count", h.Session.Count)

	sessions := pos.Group("/sessions")
	{
		sessions.POST("/open", h.Session.Open)
		sessions.GET("/current", h.Session.Current)
		sessions.POST("/close", h.Session.Close)
		sessions.GET("/history", h.Session.History)
		sessions.GET("/:id/report", h.Session.Report)
		sessions.POST("/:id/print", h.Printer.PrintZTicket)
	}

	pos.GET("/printer/status", h.Printer.GetStatus)
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// The catalogue is needed by every screen
	protected.GET("/products", h.Product.List)
	protected.GET("/products/low-stock", h.Product.GetLowStock)
	protected.GET("/products/:id", h.Product.Get)

	inventory := protected.Group("")
	inventory.Use(middleware.RequireArea(deps.Permissions, service.PermInventory))
	{
		inventory.POST("/products", h.Product.Create)
		inventory.PUT("/products/:id", h.Product.Update)
		inventory.DELETE("/products/:id", h.Product.Delete)

		inventory.GET("/purchases", h.Purchase.List)
		inventory.POST("/purchases", h.Purchase.Receive)
		inventory.GET("/purchases/:id", h.Purchase.Get)
	}
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	staff := protected.Group("")
	staff.Use(middleware.RequireArea(deps.Permissions, service.PermStaff))

	employees := staff.Group("/employees")
	{
		employees.GET("", h.Staff.ListEmployees)
		employees.POST("", h.Staff.CreateEmployee)
		employees.GET("/:id", h.Staff.GetEmployee)
		employees.PUT("/:id", h.Staff.UpdateEmployee)
	}

	attendance := staff.Group("/attendance")
	{
		attendance.GET("", h.Staff.ListAttendance)
		attendance.POST("/clock-in", h.Staff.ClockIn)
		attendance.POST("/clock-out", h.Staff.ClockOut)
	}

	payroll := staff.Group("/payroll")
	{
		payroll.GET("", h.Staff.ListPayroll)
		payroll.GET("/export.xlsx", h.Staff.ExportPayroll)
		payroll.GET("/:employee_id", h.Staff.GetPayroll)
		payroll.POST("/:employee_id/pay", h.Staff.Pay)
		payroll.GET("/:employee_id/payslip.pdf", h.Staff.Payslip)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps, assistantLimiter *middleware.ClientRateLimiter) {
	reports := protected.Group("")
	reports.Use(middleware.RequireArea(deps.Permissions, service.PermReports))
	{
		reports.GET("/reports/summary", h.Report.Summary)
		reports.GET("/reports/trend", h.Report.Trend)
		reports.GET("/reports/sales.xlsx", h.Report.ExportSales)

		reports.GET("/expenses", h.Expense.List)
		reports.POST("/expenses", h.Expense.Create)

		reports.POST("/assistant/ask", assistantLimiter.Middleware(), h.Assistant.Ask)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/notifications", h.Preference.Notifications)
	protected.GET("/preferences/:key", h.Preference.Get)

	// Any profile may save its own screen state; the role table is admin only
	protected.PUT("/preferences/:key",
		middleware.RequireAreaWhen(deps.Permissions, service.PermSettings, func(c *gin.Context) bool {
			return c.Param("key") == service.PrefRolePermissions
		}),
		h.Preference.Put)

	protected.POST("/profiles", middleware.RequireArea(deps.Permissions, service.PermSettings), h.Profile.Create)
}
