package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hilthontt/roomly/dependency"
	"github.com/hilthontt/roomly/infrastructure/config"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	env := pflag.String("env", os.Getenv("APP_ENV"), "configuration environment (development, docker, production)")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	cfg := config.GetConfigForEnv(*env)

	if cfg.Sentry.Dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.Dsn,
			Debug:            cfg.Sentry.Debug,
			SendDefaultPII:   cfg.Sentry.SendDefaultPII,
			Environment:      cfg.Server.RunMode,
			Release:          cfg.Jaeger.ServiceVersion,
			AttachStacktrace: true,
		}); err != nil {
			log.Printf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	container, err := dependency.NewContainer(cfg, *migrateOnly)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing dependencies: %w", err))
	}

	if *migrateOnly {
		container.Logger.Info("Migrations applied, exiting")
		if err := container.Shutdown(); err != nil {
			log.Fatal(err)
		}
		return
	}

	router := container.SetupRouter()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.InternalPort),
		Handler:           otelhttp.NewHandler(router, cfg.Jaeger.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	go func() {
		container.Logger.Info("Server starting",
			zap.String("port", cfg.Server.InternalPort),
			zap.String("mode", cfg.Server.RunMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		container.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := container.Shutdown(); err != nil {
		container.Logger.Error("Dependency shutdown failed", zap.Error(err))
	}

	log.Println("Server exited successfully")
}
