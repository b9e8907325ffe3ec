package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appattendance "github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/application/auth"
	appinventory "github.com/astrobsm/ivanstamas-api/internal/application/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/application/notification"
	"github.com/astrobsm/ivanstamas-api/internal/application/payroll"
	"github.com/astrobsm/ivanstamas-api/internal/application/usecase"
	domattendance "github.com/astrobsm/ivanstamas-api/internal/domain/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/domain/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/excel"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/lock"
	infrapdf "github.com/astrobsm/ivanstamas-api/internal/infrastructure/pdf"
	httpRouter "github.com/astrobsm/ivanstamas-api/internal/interfaces/http"
	"github.com/astrobsm/ivanstamas-api/pkg/config"
	"github.com/astrobsm/ivanstamas-api/pkg/logger"
	"github.com/astrobsm/ivanstamas-api/pkg/phone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	thresholds, err := inventory.ParseThresholds(cfg.Stock.CriticalRatio)
	if err != nil {
		log.Fatal().Err(err).Msg("STOCK_CRITICAL_RATIO")
	}
	policy, err := domattendance.NewPolicy(cfg.Attendance.Timezone, cfg.Attendance.WorkStart, cfg.Attendance.StandardHours)
	if err != nil {
		log.Fatal().Err(err).Msg("política de asistencia")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.Close()

	// Bloqueo por staff: Redis si está configurado (varias instancias), si no en memoria.
	var locker appattendance.StaffLocker
	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		ttl := time.Duration(cfg.Attendance.LockTTLSeconds) * time.Second
		locker = lock.NewRedisLocker(rdb, ttl, log.Component("lock"))
	} else {
		log.Warn().Msg("REDIS_ADDRESS vacío: bloqueo de asistencia en memoria (una sola instancia)")
		locker = lock.NewKeyedMutex()
	}

	phones := phone.NewNormalizer(cfg.Phone.DefaultRegion)
	exporter := excel.NewExporter()

	authUC := auth.NewAuthUseCase(store.Users, store.Staff, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	notificationUC := notification.NewUseCase(store.Notifications, store.Users, log.Component("notification"))
	inventoryUC := appinventory.NewItemUseCase(appinventory.ItemDeps{
		ItemRepo:      store.Items,
		MovementRepo:  store.Movements,
		WarehouseRepo: store.Warehouses,
		Tx:            store.Tx,
		Thresholds:    thresholds,
		Notifier:      notificationUC,
		Exporter:      exporter,
		Log:           log.Component("inventory"),
	})
	recorder := appattendance.NewRecorder(store.Tx, locker, policy, log.Component("attendance"))
	payrollUC := payroll.NewUseCase(store.Payrolls, store.Staff, store.Attendance,
		infrapdf.NewPayslipGenerator(cfg.App.CompanyName), log.Component("payroll"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.App.SwaggerFile,
		Path:     "docs",
		Title:    "IVANSTAMAS ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(store.Users, log.Component("users")),
		StaffUC:        usecase.NewStaffUseCase(store.Staff, phones, log.Component("staff")),
		Recorder:       recorder,
		AttendanceQ:    appattendance.NewQueryUseCase(store.Staff, store.Attendance, exporter),
		InventoryUC:    inventoryUC,
		WarehouseUC:    usecase.NewWarehouseUseCase(store.Warehouses),
		SupplierUC:     usecase.NewSupplierUseCase(store.Suppliers, phones),
		CustomerUC:     usecase.NewCustomerUseCase(store.Customers, phones),
		NotificationUC: notificationUC,
		PayrollUC:      payrollUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
