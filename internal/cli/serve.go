package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/iliyamo/shift-scheduler/internal/config"
	"github.com/iliyamo/shift-scheduler/internal/handler"
	"github.com/iliyamo/shift-scheduler/internal/metrics"
	"github.com/iliyamo/shift-scheduler/internal/middleware"
	"github.com/iliyamo/shift-scheduler/internal/queue"
	"github.com/iliyamo/shift-scheduler/internal/router"
	"github.com/iliyamo/shift-scheduler/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, conf, newLogger(conf.Logger))
	},
}

func serve(ctx context.Context, conf *config.Config, logger *slog.Logger) error {
	store, db, err := openStore(ctx, conf.DB, conf.DB.AutoMigrate, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var events queue.Publisher = queue.NopPublisher{}
	if conf.AMQP.Enabled {
		pub := queue.NewAMQPPublisher(conf.AMQP.URL, conf.AMQP.Queue)
		defer pub.Close()
		events = pub

		if conf.AMQP.Consume {
			consumer := &queue.AuditConsumer{
				URL:     conf.AMQP.URL,
				Queue:   conf.AMQP.Queue,
				LogPath: conf.AMQP.AuditLogPath,
				Logger:  logger,
			}
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.ErrorContext(ctx, "audit consumer stopped", slog.Any("error", err))
				}
			}()
		}
	}

	rdb := config.NewRedisClient(ctx, conf.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if conf.Redis.Enabled {
		logger.WarnContext(ctx, "redis unreachable, response cache and rate limit disabled", slog.String("addr", conf.Redis.Addr))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	router.RegisterRoutes(e, router.Handlers{
		Employees: &handler.EmployeeHandler{Employees: service.NewEmployeeService(store, events, m, logger), Logger: logger},
		Shifts:    &handler.ShiftHandler{Shifts: service.NewShiftService(store, events, m, logger), Logger: logger},
		Analytics: &handler.AnalyticsHandler{Analytics: service.NewAnalyticsService(store, m, logger), Logger: logger},
		Export:    &handler.ExportHandler{Export: service.NewExportService(store, logger), Logger: logger},
		Ready:     handler.Ready(db),
	}, reg,
		middleware.NewTokenBucket(conf.RateLimit, rdb, logger),
		middleware.NewRedisCache(conf.Cache, rdb, logger),
	)

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "listening", slog.String("address", conf.HTTP.Address), slog.String("env", conf.Env))
		if err := e.Start(conf.HTTP.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return errors.WithStack(e.Shutdown(shutdownCtx))
}
