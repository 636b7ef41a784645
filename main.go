package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"upwork-analytics/config"
	"upwork-analytics/handlers"
	"upwork-analytics/services"
	"upwork-analytics/storage"
	"upwork-analytics/telemetry"
	"upwork-analytics/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func newLogger(cfg *config.Config) (*utils.Logger, error) {
	return utils.NewLogger(cfg.LogLevel)
}

func newTableSource(cfg *config.Config, logger *utils.Logger) storage.TableSource {
	return storage.NewCSVReader(cfg.CSVFilePath, logger)
}

func newPipeline(cfg *config.Config, source storage.TableSource, logger *utils.Logger) *services.Pipeline {
	return services.NewPipeline(source, logger, cfg.TopSkillsLimit)
}

func newDashboardHandler(cfg *config.Config, pipeline *services.Pipeline, logger *utils.Logger) *handlers.DashboardHandler {
	return handlers.NewDashboardHandler(
		pipeline,
		storage.NewCSVWriter(logger),
		utils.NewRateLimiter(cfg.ReloadCooldownMs),
		logger,
		cfg.TopSkillsLimit,
	)
}

func newRouter(cfg *config.Config, h *handlers.DashboardHandler, logger *utils.Logger) *gin.Engine {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	return handlers.NewRouter(h, logger)
}

// registerServer loads the dataset before the listener opens so a missing or
// malformed input stops the process instead of serving errors
func registerServer(lc fx.Lifecycle, cfg *config.Config, pipeline *services.Pipeline, router *gin.Engine, logger *utils.Logger) {
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	var shutdownTracer func(context.Context) error

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdownTracer, err = telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTELCollectorURL)
			if err != nil {
				return err
			}

			ds, err := pipeline.Dataset(ctx)
			if err != nil {
				return err
			}
			logger.Info("Loaded %d postings and %d distinct skills from %s",
				len(ds.Postings), len(ds.Skills), ds.SourcePath)

			go func() {
				logger.Info("Dashboard listening on %s", cfg.ListenAddr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down dashboard...")
			if err := server.Shutdown(ctx); err != nil {
				logger.Error("HTTP shutdown failed: %v", err)
			}
			if shutdownTracer != nil {
				if err := shutdownTracer(ctx); err != nil {
					logger.Error("Tracer shutdown failed: %v", err)
				}
			}
			_ = logger.Sync()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newTableSource,
			newPipeline,
			newDashboardHandler,
			newRouter,
		),
		fx.WithLogger(func(logger *utils.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Zap()}
		}),
		fx.Invoke(registerServer),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
