package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/application/auth"
	"github.com/astrobsm/ivanstamas-api/internal/application/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/application/notification"
	"github.com/astrobsm/ivanstamas-api/internal/application/payroll"
	"github.com/astrobsm/ivanstamas-api/internal/application/usecase"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	StaffUC        *usecase.StaffUseCase
	Recorder       *attendance.Recorder
	AttendanceQ    *attendance.QueryUseCase
	InventoryUC    *inventory.ItemUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	SupplierUC     *usecase.SupplierUseCase
	CustomerUC     *usecase.CustomerUseCase
	NotificationUC *notification.UseCase
	PayrollUC      *payroll.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/approve", userHandler.Approve)

	staff := protected.Group("/staff")
	staffHandler := NewStaffHandler(deps.StaffUC)
	staff.Get("/", staffHandler.List)
	staff.Post("/", managers, staffHandler.Create)
	staff.Get("/:id", staffHandler.GetByID)

	att := protected.Group("/attendance")
	attHandler := NewAttendanceHandler(deps.Recorder, deps.AttendanceQ)
	att.Post("/", attHandler.Record)
	att.Get("/", attHandler.List)
	att.Get("/export", managers, attHandler.Export)
	att.Get("/:staffId", attHandler.ListByStaff)
	protected.Get("/hours-worked/:staffId", attHandler.HoursWorked)

	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/", managers, invHandler.Create)
	inv.Get("/", invHandler.List)
	inv.Get("/summary", invHandler.Summary)
	inv.Get("/export", managers, invHandler.Export)
	inv.Get("/:id", invHandler.GetByID)
	inv.Post("/:id/adjust", managers, invHandler.Adjust)
	inv.Post("/:id/transfer", managers, invHandler.Transfer)
	inv.Get("/:id/movements", invHandler.Movements)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", managers, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", managers, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", managers, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Post("/", managers, notificationHandler.Send)
	notifications.Get("/mine", notificationHandler.ListMine)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	pay := protected.Group("/payroll", managers)
	payrollHandler := NewPayrollHandler(deps.PayrollUC)
	pay.Post("/run", payrollHandler.Run)
	pay.Get("/", payrollHandler.List)
	pay.Get("/:id/payslip", payrollHandler.Payslip)
}
