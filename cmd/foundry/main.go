package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/jhoicas/foundry-erp/internal/application/auth"
	"github.com/jhoicas/foundry-erp/internal/application/erp"
	"github.com/jhoicas/foundry-erp/internal/application/gateway"
	"github.com/jhoicas/foundry-erp/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/foundry-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/foundry-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/foundry-erp/internal/interfaces/http"
	"github.com/jhoicas/foundry-erp/internal/jobs"
	"github.com/jhoicas/foundry-erp/pkg/config"
	"github.com/jhoicas/foundry-erp/pkg/jwt"
	"github.com/jhoicas/foundry-erp/pkg/logger"
)

// version se fija en build con -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "foundry",
		Short:         "Capa de sincronización del ERP de fundición",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newStatsCmd(), newMigrateCmd(), newTokenCmd())
	return root
}

// loadRuntime configuración y logger comunes a todos los comandos.
func loadRuntime() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})
	return cfg, log, nil
}

// backend repositorios contra PostgreSQL o, en modo demo, en memoria.
type backend struct {
	repos gateway.Repositories
	close func()
}

func openBackend(ctx context.Context, cfg *config.Config, inMemory bool) (*backend, error) {
	if inMemory {
		db := memory.New()
		return &backend{
			repos: gateway.Repositories{
				Materials:   db.Materials(),
				Orders:      db.Orders(),
				Inspections: db.Inspections(),
				Suppliers:   db.Suppliers(),
				Costs:       db.Costs(),
			},
			close: func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &backend{
		repos: gateway.Repositories{
			Materials:   postgres.NewMaterialRepository(pool),
			Orders:      postgres.NewProductionOrderRepository(pool),
			Inspections: postgres.NewQualityInspectionRepository(pool),
			Suppliers:   postgres.NewSupplierRepository(pool),
			Costs:       postgres.NewCostEntryRepository(pool),
		},
		close: pool.Close,
	}, nil
}

// ── serve ────────────────────────────────────────────────────────────────────

func newServeCmd() *cobra.Command {
	var inMemory bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP sobre el store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), inMemory)
		},
	}
	cmd.Flags().BoolVar(&inMemory, "memory", false, "Usar backend en memoria (demo, sin PostgreSQL)")
	return cmd
}

func runServe(ctx context.Context, inMemory bool) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	log.Info().Str("env", cfg.App.Env).Str("app", cfg.App.Name).Bool("memory", inMemory).Msg("iniciando aplicación")

	be, err := openBackend(ctx, cfg, inMemory)
	if err != nil {
		return err
	}
	defer be.close()

	verifier, err := auth.NewVerifier(cfg.Auth, log.Component("auth"))
	if err != nil {
		return err
	}
	defer verifier.Close()

	session := auth.NewSession(verifier, log.Component("session"))
	gw := gateway.New(be.repos, session, log.Component("gateway"))
	store := erp.New(gw, log.Component("store"))
	store.Bind(ctx, session)
	defer store.Close()

	if cfg.Sync.Interval > 0 {
		syncJob, err := jobs.NewSyncScheduler(store, cfg.Sync.Interval, log.Component("jobs"))
		if err != nil {
			return err
		}
		syncJob.Start()
		defer func() {
			if err := syncJob.Stop(); err != nil {
				log.Error().Err(err).Msg("detener scheduler")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:   store,
		Session: session,
		Costs:   gw,
		Reports: infrapdf.NewDashboardReportGenerator(),
		Company: cfg.App.Name,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	case err := <-errCh:
		return fmt.Errorf("servidor HTTP: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("aplicación detenida")
	return nil
}

// ── stats ────────────────────────────────────────────────────────────────────

func newStatsCmd() *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Carga el store del usuario del token e imprime los KPIs del tablero en JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				token = os.Getenv("FOUNDRY_TOKEN")
			}
			if token == "" {
				return errors.New("se requiere --token o FOUNDRY_TOKEN")
			}
			return runStats(cmd.Context(), token, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Access token de Supabase Auth")
	return cmd
}

func runStats(ctx context.Context, token string, out io.Writer) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	be, err := openBackend(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer be.close()

	verifier, err := auth.NewVerifier(cfg.Auth, log.Component("auth"))
	if err != nil {
		return err
	}
	defer verifier.Close()

	session := auth.NewSession(verifier, log.Component("session"))
	store := erp.New(gateway.New(be.repos, session, log.Component("gateway")), log.Component("store"))
	store.Bind(ctx, session)
	defer store.Close()

	if _, err := session.SignIn(ctx, token); err != nil {
		return err
	}
	return writeStats(out, store.Snapshot())
}

// writeStats imprime los KPIs junto al tamaño de cada colección.
func writeStats(out io.Writer, snap erp.Snapshot) error {
	if snap.DashboardStats == nil {
		return errors.New("no se pudieron leer las estadísticas")
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"dashboardStats":     snap.DashboardStats,
		"materials":          len(snap.Materials),
		"productionOrders":   len(snap.ProductionOrders),
		"qualityInspections": len(snap.QualityInspections),
		"suppliers":          len(snap.Suppliers),
	})
}

// ── migrate ──────────────────────────────────────────────────────────────────

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema de tablas (idempotente)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()
			if err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
			log.Info().Msg("esquema aplicado")
			return nil
		},
	}
}

// ── token ────────────────────────────────────────────────────────────────────

func newTokenCmd() *cobra.Command {
	var (
		secret, user, email, issuer string
		ttl                         time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Genera un access token HS256 para desarrollo local",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("SUPABASE_JWT_SECRET")
			}
			tok, err := jwt.Generate(secret, user, email, issuer, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&secret, "secret", "", "JWT secret (por defecto SUPABASE_JWT_SECRET)")
	f.StringVar(&user, "user", "", "ID del usuario (sub)")
	f.StringVar(&email, "email", "", "Email del usuario")
	f.StringVar(&issuer, "issuer", "", "Issuer del token")
	f.DurationVar(&ttl, "ttl", time.Hour, "Vigencia del token")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
