package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-documentos/internal/application/editor"
	"github.com/jhoicas/inventario-documentos/internal/application/report"
	infrapdf "github.com/jhoicas/inventario-documentos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-documentos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-documentos/internal/interfaces/http"
	"github.com/jhoicas/inventario-documentos/pkg/config"
	"github.com/jhoicas/inventario-documentos/pkg/logger"
)

// @title                       Inventario documentos API
// @version                     1.0
// @description                 Edición de documentos de inventario: entradas, salidas y devoluciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("session_store", cfg.Editor.SessionStore).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema de documentos verificado")
	}

	docRepo := postgres.NewDocumentRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	g, gctx := errgroup.WithContext(ctx)

	// Sesiones de edición: en memoria (una instancia) o Redis (varias instancias detrás de un balanceador).
	var sessions editor.SessionStore
	switch cfg.Editor.SessionStore {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		sessions = editor.NewRedisStore(client, cfg.Editor.SessionTTL, cfg.Redis.Prefix)
	default:
		memory := editor.NewMemoryStore(cfg.Editor.SessionTTL)
		sweepLog := log.Component("janitor")
		g.Go(func() error {
			return memory.RunJanitor(gctx, cfg.Editor.SweepInterval, func(removed int) {
				sweepLog.Debug().Int("removed", removed).Int("open", memory.Len()).Msg("sesiones expiradas descartadas")
			})
		})
		sessions = memory
	}

	editorUC := editor.NewEditorUseCase(sessions, txRunner, docRepo, itemRepo, warehouseRepo, stockRepo, log)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportUC := report.NewReportUseCase(docRepo, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     cfg.Docs.Path,
			Title:    "Inventario Documentos API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger deshabilitado: no se encontró la especificación")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EditorUC:  editorUC,
		ReportUC:  reportUC,
		JWTSecret: cfg.JWT.Secret,
		PageSize:  cfg.Editor.PageSize,
		Log:       log,
	})

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}
