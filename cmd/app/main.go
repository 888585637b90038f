package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	configs, err := cmd.LoadConfig(cmd.LookupEnv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := telemetry.NewLogger(os.Stdout, slog.LevelInfo)
	slog.SetDefault(logger)
	shutdownTracer := telemetry.SetupTracer("fulfillment")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustOpenDB(configs)
	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	if err := app.SeedZones(ctx); err != nil {
		log.Fatalf("Failed to seed delivery zones: %v", err)
	}

	if err := run(ctx, app, configs.HTTPPort, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Close(); err != nil {
		logger.Warn("Failed to close connections", "error", err)
	}
	if err := shutdownTracer(closeCtx); err != nil {
		logger.Warn("Failed to stop tracer", "error", err)
	}
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	if configs.StoreDriver != cmd.StoreDriverPostgres {
		return nil
	}
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := postgresadapter.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return gormDB
}

// run serves HTTP, consumes payment confirmations and runs scheduled jobs until
// ctx is done or one of them fails.
func run(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	router, err := httpadapter.NewRouter(app.CreateHTTPServer(), logger)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := router.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if consumer := app.CreatePaymentConsumer(); consumer != nil {
		g.Go(func() error {
			return consumer.Run(ctx)
		})
	}

	return g.Wait()
}
