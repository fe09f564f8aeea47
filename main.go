package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlendvay/ingress-migrate/migrate"
	"github.com/mlendvay/ingress-migrate/model"
	"github.com/mlendvay/ingress-migrate/utils"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	level := zerolog.InfoLevel
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		if parsed, err := zerolog.ParseLevel(l); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cmd := newCLI()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func newCLI() *cli.Command {
	return &cli.Command{
		Name:    "ingress-migrate",
		Usage:   "demo: migrate Ingress traffic from ingress-nginx to Traefik on a local k3d cluster",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Commands: []*cli.Command{
			{
				Name:   "demo",
				Usage:  "run all migration phases, then tear everything down",
				Action: runDemo,
			},
			{
				Name:   "cleanup",
				Usage:  "tear down whatever a previous run left behind",
				Action: runCleanup,
			},
		},
		// Bare invocation runs the demo; anything unrecognized is an
		// error rather than a silent default.
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q, see 'ingress-migrate help'", c.Args().First())
			}
			return runDemo(ctx, c)
		},
	}
}

func runDemo(ctx context.Context, _ *cli.Command) error {
	r, err := newRunner()
	if err != nil {
		return err
	}
	// Teardown is deferred here, not inside Demo, so an interrupt
	// mid-phase still cleans up; the runner guarantees it executes at
	// most once.
	defer r.Teardown(context.Background())
	return r.Demo(ctx)
}

func runCleanup(ctx context.Context, _ *cli.Command) error {
	r, err := newRunner()
	if err != nil {
		return err
	}
	r.Teardown(ctx)
	return nil
}

func newRunner() (*migrate.Runner, error) {
	cfg, err := env.ParseAs[model.Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := utils.LookPath("k3d", "kubectl"); err != nil {
		return nil, err
	}
	return migrate.New(&cfg, &utils.ShellRunner{}), nil
}
