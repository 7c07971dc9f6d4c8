package main

import (
	"context"
	"os"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	applog "fintrack/internal/log"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup == nil {
			return
		}
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", applog.FieldError, err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, result.Backend, apphttp.Options{
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
	})
	srv.MaxHeaderBytes = 1 << 16

	logger.Info("Starting fintrack server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		applog.FieldOperation, applog.OpStartup)

	if err := cli.Serve(ctx, logger, srv, cfg.ShutdownTimeout); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		stop()
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
