// Package main - Entry point for the recipe pricing HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"recipe-pricing/api"
	"recipe-pricing/internal/config"
	"recipe-pricing/internal/logging"
	"recipe-pricing/internal/settings"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "", "config file (default is $HOME/.recipe-pricing.json)")
	addr := flag.String("addr", "", "server address (overrides config)")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(*cfgPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, addr string) error {
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	var tenantSettings *settings.File
	if path := cfg.Tenant.SettingsFile; path != "" {
		if tenantSettings, err = settings.Load(path); err != nil {
			return err
		}
		// Settings must resolve before serving
		if _, err := settings.Resolve(tenantSettings); err != nil {
			return err
		}
	}

	server := api.NewServer(api.Options{
		Version:          version,
		Tenant:           cfg.Tenant,
		Settings:         tenantSettings,
		MetricsNamespace: cfg.Server.MetricsNamespace,
		RequestTimeout:   cfg.Server.RequestTimeout(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("recipe pricing server starting",
		zap.String("version", version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("business_type", cfg.Tenant.BusinessType),
		zap.String("country", cfg.Tenant.Country))
	return server.ListenAndServe(ctx, cfg.Server.Addr)
}
