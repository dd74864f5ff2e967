// Command createuser seeds the credential store with the configured admin user.
//
// It reads ADMIN_EMAIL and ADMIN_PASSWORD (or their WALLET_ADMIN_ prefixed
// forms) and is a no-op when the email is already registered.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"wallet-service/config"
	pgStorage "wallet-service/internal/adapter/storage/postgres"
	"wallet-service/internal/service"
	"wallet-service/pkg/logger"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	migrate := flag.Bool("migrate", true, "apply schema migrations before seeding")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = run(ctx, cfg, *migrate, log, os.Stdout)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		os.Exit(1)
	}
}

// run seeds the admin user and reports the outcome on out.
func run(ctx context.Context, cfg *config.Config, migrate bool, log zerolog.Logger, out io.Writer) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must both be set")
	}

	if migrate {
		if err := pgStorage.Migrate(cfg.Database.DSN(), log); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	bootstrapper := service.NewBootstrapper(
		pgStorage.NewUserRepo(pool),
		service.NewBcryptHashService(bcrypt.DefaultCost),
		log,
	)

	created, err := bootstrapper.EnsureUser(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "created user %s\n", cfg.Admin.Email)
	} else {
		fmt.Fprintf(out, "user %s already exists\n", cfg.Admin.Email)
	}
	return nil
}
