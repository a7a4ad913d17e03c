package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/session"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/workspace"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
	infrapdf "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/pdf"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/postgres"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/redisstore"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/restclient"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/statestore"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/infrastructure/xmlexport"
	httpRouter "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/interfaces/http"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/config"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

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
		Str("backend", cfg.Backend.BaseURL).
		Str("state", cfg.State.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	state, closeState, err := openStateStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("estado persistido")
	}
	defer closeState()

	registry := workspace.NewRegistry(state, backendFactory(cfg, log), workspace.Config{
		PageSize:       cfg.Editor.PageSize,
		RedirectDelay:  cfg.Editor.RedirectDelay,
		SearchDebounce: cfg.Search.Debounce,
		ListLimit:      cfg.Search.ListLimit,
	}, log)
	go registry.RunSweeper(ctx, cfg.Workspace.SweepEvery, cfg.Workspace.Idle)

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ladger Workspace API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "workspaces": registry.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry: registry,
		JWT:      cfg.JWT,
		Exporters: map[string]ports.PriceListExporter{
			httpRouter.FormatPDF: infrapdf.NewPriceListPDF("en"),
			httpRouter.FormatXML: xmlexport.Exporter{},
		},
		ListLimit: cfg.Search.ListLimit,
		Log:       log,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// backendFactory un cliente REST por workspace: la sesión entrega el token y
// atiende los 401.
func backendFactory(cfg *config.Config, log *logger.Logger) workspace.BackendFactory {
	rc := restclient.Config{
		BaseURL:    cfg.Backend.BaseURL,
		Timeout:    cfg.Backend.Timeout,
		AuthSource: cfg.Backend.AuthSource,
	}
	return func(sess *session.Store) workspace.Backend {
		client := restclient.New(rc, sess, log)
		client.SetSessionGuard(sess)
		return workspace.Backend{
			API:       client,
			Customers: restclient.NewResource[entity.Customer](client, "customer"),
			Orders:    restclient.NewResource[entity.Order](client, "order"),
			MessageOf: restclient.MessageOf,
		}
	}
}

// openStateStore abre el backend de estado persistido según STATE_BACKEND.
func openStateStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.StateStore, func(), error) {
	switch cfg.State.Backend {
	case config.StateRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.State.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewStateStore(rdb, cfg.State.TTL), func() { _ = rdb.Close() }, nil

	case config.StatePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		store := postgres.NewStateStore(pool, cfg.State.TTL)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		if cfg.State.TTL > 0 {
			go purgeExpired(ctx, store, cfg.State.TTL, log)
		}
		return store, pool.Close, nil

	default:
		return statestore.NewMemory(), func() {}, nil
	}
}

// purgeExpired Postgres no expira filas solo; se borran las vencidas periódicamente.
func purgeExpired(ctx context.Context, store *postgres.StateStore, every time.Duration, log *logger.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de estado vencido")
				continue
			}
			if n > 0 {
				log.Debug().Int64("rows", n).Msg("estado vencido purgado")
			}
		}
	}
}
