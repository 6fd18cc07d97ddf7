package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/cricket-scorer/internal/app"
	"github.com/riskibarqy/cricket-scorer/internal/config"
	"github.com/riskibarqy/cricket-scorer/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/cricket-scorer/internal/interfaces/cli"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCommandError)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, "service", "cricket-scorecard")
	defer func() { _ = logger.Sync() }()

	open := func(ctx context.Context) (cli.Store, func() error, error) {
		db, err := app.OpenDB(cfg)
		if err != nil {
			return cli.Store{}, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return cli.Store{}, nil, fmt.Errorf("ping database: %w", err)
		}
		return cli.Store{
			Matches:    postgres.NewMatchRepository(db),
			Deliveries: postgres.NewDeliveryRepository(db),
			Careers:    postgres.NewCareerRepository(db),
		}, db.Close, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = cli.NewRootCommand(open, logger).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
