package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arifwdtm/starpick/internal/app"
	"github.com/arifwdtm/starpick/internal/config"
	"github.com/arifwdtm/starpick/internal/domain/rating"
	"github.com/arifwdtm/starpick/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := application.Run.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline run failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "pipeline run finished",
		"day", summary.Day,
		"total", summary.TotalFixtures,
		"eligible", summary.Eligible,
		"already_processed", summary.AlreadyProcessed,
		"rated", summary.Rated,
		"skipped_leagues", summary.SkippedLeagues,
		"failed_leagues", summary.FailedLeagues,
	)

	printLedger(summary.Ledger)
}

func printLedger(ledger rating.Ledger) {
	fmt.Printf("\n=== Rated fixtures ===\n")
	for i := len(rating.Tiers) - 1; i >= 0; i-- {
		tier := rating.Tiers[i]
		records := ledger.ForTier(tier)
		fmt.Printf("\n%s (%d)\n", tier, len(records))
		for _, rec := range records {
			fmt.Printf("  [%d] %s: %s vs %s -> %s (%d-%d) %s",
				rec.Fixture.ID,
				rec.LeagueName,
				rec.Fixture.HomeTeam,
				rec.Fixture.AwayTeam,
				rec.Score.PointsWinner,
				rec.Score.HomePoints,
				rec.Score.AwayPoints,
				rec.Score.Comment,
			)
			if rec.Warning != "" {
				fmt.Printf(" %s", rec.Warning)
			}
			fmt.Println()
		}
	}
}
