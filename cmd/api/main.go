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

	"github.com/jhoicas/inventario-ventas/internal/application/auth"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/application/orders"
	"github.com/jhoicas/inventario-ventas/internal/application/reports"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/inventario-ventas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/scheduler"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/inventario-ventas/internal/interfaces/http"
	"github.com/jhoicas/inventario-ventas/pkg/config"
	"github.com/jhoicas/inventario-ventas/pkg/logger"
)

// backend repositorios según STORE_DRIVER.
type backend struct {
	txRunner repository.TxRunner
	reader   repository.UnitOfWork
	users    repository.UserRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be := openBackend(ctx, cfg, log)
	defer be.close()

	reg := metrics.New()

	var lowStockCache inventory.LowStockCache
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			// la caché es opcional: se sigue sin ella
			log.Warn().Err(err).Msg("redis no disponible, bajo stock sin caché")
		} else {
			defer rdb.Close()
			lowStockCache = cache.NewLowStockCache(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log.Named("cache").Zerolog())
		}
	}

	ledger := inventory.NewLedger(be.txRunner, be.reader, lowStockCache, reg)
	monitor := inventory.NewLowStockMonitor(ledger, newNotifier(cfg, log))
	adjustmentUC := inventory.NewAdjustmentUseCase(ledger)
	orderUC := orders.NewUseCase(be.txRunner, be.reader, cfg.Sales.TaxRate)
	saleUC := sales.NewUseCase(be.txRunner, be.reader, ledger, cfg.Sales.TaxRate, reg)
	reportSvc := reports.NewService(be.reader, infrapdf.NewMarotoReportRenderer(cfg.App.Name))
	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Bootstrap.Enabled() {
		created, err := authUC.Bootstrap(ctx, cfg.Bootstrap.AdminUser, cfg.Bootstrap.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("usuario", cfg.Bootstrap.AdminUser).Msg("administrador inicial creado")
		}
	}

	var jobs *scheduler.Scheduler
	if cfg.Alerts.ScanMinutes > 0 {
		jobs = scheduler.New(log.Named("scheduler").Zerolog())
		if err := jobs.ScheduleLowStockScan(monitor, time.Duration(cfg.Alerts.ScanMinutes)*time.Minute); err != nil {
			log.Fatal().Err(err).Msg("programar escaneo de bajo stock")
		}
		jobs.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario y Ventas API",
	}))

	if err := httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		Ledger:      ledger,
		Monitor:     monitor,
		Adjustments: adjustmentUC,
		Orders:      orderUC,
		Sales:       saleUC,
		Reports:     reportSvc,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
		RateLimit:   cfg.RateLimit.Default,
		LoginLimit:  cfg.RateLimit.Login,
		Metrics:     reg,
		Log:         log.Named("http"),
	}); err != nil {
		log.Fatal().Err(err).Msg("registrar rutas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	if jobs != nil {
		jobs.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) backend {
	if cfg.App.StoreDriver == "memory" {
		store := memory.NewStore()
		seed.Demo().ApplyMemory(store)
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return backend{txRunner: store.TxRunner(), reader: store.Reader(), users: store.Users(), close: func() {}}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}
	return backend{
		txRunner: postgres.NewTxRunner(pool),
		reader:   postgres.NewUnitOfWork(pool),
		users:    postgres.NewUserRepository(pool),
		close:    pool.Close,
	}
}

// newNotifier correo si hay SMTP y destinatarios; si no, log.
func newNotifier(cfg *config.Config, log *logger.Logger) inventory.Notifier {
	if cfg.SMTP.Enabled() {
		n, err := notify.NewMailNotifier(cfg.SMTP, cfg.Alerts)
		if err == nil {
			return n
		}
		log.Warn().Err(err).Msg("alertas por correo desactivadas")
	}
	return notify.NewLogNotifier(log.Named("alertas").Zerolog())
}
