package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techmarket/internal/config"
	"techmarket/internal/database"
	"techmarket/internal/logger"
	"techmarket/internal/repository"
	"techmarket/internal/screen"
	"techmarket/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply database migrations before starting")
	flag.Parse()

	if err := run(*migrate); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Screen output owns stdout.
	log, err := logger.New(cfg.Server.Env, "stderr")
	if err != nil {
		log = logger.NewWithDefaults()
		log.Warn("Falling back to default logger", zap.Error(err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbService, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("%s: %w", service.MsgStoreUnavailable, err)
	}
	defer dbService.Close()

	if migrate {
		if err := database.RunMigrations(dbService.DB(), cfg.Database.MigrationsDir, log); err != nil {
			return err
		}
	}

	// Tokens never leave this process.
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = uuid.NewString()
	}

	productRepo := repository.NewProductRepository(dbService.DB(), cfg.Database.QueryTimeout)
	adminRepo := repository.NewAdminRepository(dbService.DB(), cfg.Database.QueryTimeout)

	productService := service.NewProductService(productRepo, cfg.Store.DefaultCategory, log)
	accessService := service.NewAccessService(adminRepo, service.AccessConfig{
		JWTSecret:          secret,
		TokenTTL:           time.Duration(cfg.JWT.AccessExpiry) * time.Minute,
		PlaintextPasswords: cfg.Auth.PlaintextPasswords,
	}, log)

	nav := screen.NewNavigator(ctx, log)
	defer nav.Close()

	console := screen.NewConsole(
		nav,
		screen.NewAccessScreen(accessService, nav, log),
		screen.NewListScreen(productService, nav, cfg.Store.CardLineWidth, log),
		screen.NewManageScreen(productService, nav, log),
		os.Stdout,
		log,
	)

	if err := console.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
