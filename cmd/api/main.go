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

	"github.com/jhoicas/Bodega-api/internal/application/auth"
	appinventory "github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
	infrapdf "github.com/jhoicas/Bodega-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	zoneRepo := postgres.NewZoneRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	manifestRepo := postgres.NewShipmentManifestRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	moveRepo := postgres.NewStockMoveRepository(pool)
	receiptRepo := postgres.NewGoodsReceiptRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	zones := procurement.ZoneConfig{
		DefaultStorageZoneID: cfg.Receiving.DefaultZoneID,
		QuarantineZoneID:     cfg.Receiving.QuarantineZoneID,
	}
	serials := inventory.NewUUIDSerials(cfg.Receiving.ReceiptPrefix)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Bootstrap.AdminEmail != "" {
		if _, err := authUC.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
	}
	poUC := procurement.NewPurchaseOrderUseCase(txRunner, orderRepo, supplierRepo, productRepo, log)
	manifestUC := procurement.NewManifestUseCase(txRunner, manifestRepo, assetRepo, zones, serials, log)
	receiptUC := procurement.NewReceiptUseCase(procurement.ReceiptDeps{
		Tx:        txRunner,
		Receipts:  receiptRepo,
		Assets:    assetRepo,
		Moves:     moveRepo,
		Orders:    orderRepo,
		Suppliers: supplierRepo,
		Products:  productRepo,
		PDF:       infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		Zones:     zones,
		Serials:   serials,
		Log:       log,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     usecase.NewProductUseCase(productRepo),
		SupplierUC:    usecase.NewSupplierUseCase(supplierRepo),
		ZoneUC:        usecase.NewZoneUseCase(zoneRepo),
		UserUC:        usecase.NewUserUseCase(userRepo),
		PurchaseOrder: poUC,
		Aggregator:    procurement.NewQuantityAggregator(orderRepo, moveRepo),
		Manifests:     manifestUC,
		Receipts:      receiptUC,
		Stock:         appinventory.NewStockUseCase(stockRepo, productRepo),
		JWTSecret:     cfg.JWT.Secret,
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
