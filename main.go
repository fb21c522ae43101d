package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"openvdm.io/openvdm/configs"
	"openvdm.io/openvdm/configs/configsdatabase"
	"openvdm.io/openvdm/configs/configslog"
	"openvdm.io/openvdm/pkg/dashboard"
	"openvdm.io/openvdm/routes"
	"openvdm.io/openvdm/services"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.Load()
	configsdatabase.InitDB(cfg.Database)

	loader := dashboard.NewLoaderWithFallback(cfg.DashboardConfigPath, configs.DefaultDashboard)
	if _, err := loader.Config(); err != nil {
		configslog.Log.Fatal("dashboard config invalid", zap.String("path", cfg.DashboardConfigPath), zap.Error(err))
	}

	svcs := services.NewServices(configsdatabase.GetDB(), loader)
	app := routes.NewApp(svcs)

	go func() {
		configslog.Log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			configslog.Log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	configslog.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := multierr.Combine(
		app.ShutdownWithContext(ctx),
		configsdatabase.CloseDB(),
	)
	if err != nil {
		configslog.Log.Error("shutdown finished with errors", zap.Errors("errors", multierr.Errors(err)))
		configslog.SyncLogger()
		os.Exit(1)
	}
	configslog.Log.Info("shutdown complete")
}
