// Package main is quotectl, the terminal companion of the quotedesk API.
// It opens the configured record store directly, so stop the service first
// when both use the same badger directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/jsamuelsen/quotedesk/internal/adapters/access"
	"github.com/jsamuelsen/quotedesk/internal/adapters/storage"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/cli"
	"github.com/jsamuelsen/quotedesk/internal/platform/config"
	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
)

func main() {
	os.Exit(int(run()))
}

func run() subcommands.ExitStatus {
	ctx := context.Background()

	env := &cli.Env{Out: os.Stdout, Err: os.Stderr}

	var profile, logLevel string

	flag.StringVar(&env.User, "user", "", "User namespace (defaults to auth.default_user).")
	flag.StringVar(&env.Currency, "currency", cli.DefaultCurrency, "ISO 4217 code used to display amounts.")
	flag.StringVar(&profile, "profile", os.Getenv("APP_ENVIRONMENT"), "Configuration profile under configs/.")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level written to stderr.")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander, env)

	flag.Parse()

	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: loading config:", err)
		return subcommands.ExitFailure
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error: invalid config:", err)
		return subcommands.ExitFailure
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   logLevel,
		Format:  "pretty",
		Service: "quotectl",
		Version: cfg.App.Version,
	}, os.Stderr)
	logging.SetDefault(logger)

	if env.User == "" {
		env.User = cfg.Auth.DefaultUser
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: opening %s store: %v\n", cfg.Storage.Driver, err)
		return subcommands.ExitFailure
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("store close error", "error", closeErr)
		}
	}()

	env.Services = app.NewServices(app.ServicesConfig{
		StoreConfig: app.StoreConfig{
			Store:           store,
			NamespacePrefix: cfg.Storage.NamespacePrefix,
			Logger:          logger,
		},
		Validator:    access.NewAllowList(cfg.Access.Codes),
		ValidityDays: cfg.Access.ValidityDays,
	})

	return commander.Execute(ctx)
}
