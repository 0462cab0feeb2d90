package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/arifwdtm/starpick/internal/app"
	"github.com/arifwdtm/starpick/internal/config"
	"github.com/arifwdtm/starpick/internal/platform/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

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

	switch strings.ToLower(strings.TrimSpace(os.Args[1])) {
	case "list":
		runList(ctx, application)
	case "place":
		runPlace(ctx, application, os.Args[2:])
	case "settle":
		runSettle(ctx, application)
	default:
		printUsage()
		os.Exit(2)
	}
}

func runList(ctx context.Context, application *app.App) {
	bets, err := application.Bets.List(ctx)
	if err != nil {
		fatal(err)
	}
	if len(bets) == 0 {
		fmt.Println("no bets placed")
		return
	}
	for _, item := range bets {
		status := "open"
		if item.Settled {
			status = "lost"
			if item.Won != nil && *item.Won {
				status = "won"
			}
			if item.FinalHome != nil && item.FinalAway != nil {
				status += fmt.Sprintf(" (%d-%d)", *item.FinalHome, *item.FinalAway)
			}
		}
		fmt.Printf("[%d] %s: %s vs %s, pick=%s stake=%.2f placed=%s status=%s\n",
			item.FixtureID,
			item.LeagueName,
			item.HomeTeam,
			item.AwayTeam,
			item.PickedWinner,
			item.Stake,
			item.PlacedAt.Format("2006-01-02 15:04"),
			status,
		)
	}
}

func runPlace(ctx context.Context, application *app.App, args []string) {
	if len(args) < 2 {
		fmt.Println("place requires <fixture-id> <stake>")
		os.Exit(2)
	}
	fixtureID, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		fatal(fmt.Errorf("invalid fixture id %q: %w", args[0], err))
	}
	stake, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
	if err != nil {
		fatal(fmt.Errorf("invalid stake %q: %w", args[1], err))
	}

	placed, err := application.Bets.Place(ctx, fixtureID, stake)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("bet placed: %s vs %s, pick=%s stake=%.2f\n",
		placed.HomeTeam, placed.AwayTeam, placed.PickedWinner, placed.Stake)
}

func runSettle(ctx context.Context, application *app.App) {
	report, err := application.Bets.Settle(ctx)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("settled=%d won=%d pending=%d\n", report.Settled, report.Won, report.Pending)
	if report.Settled > 0 {
		fmt.Printf("success rate: %.1f%%\n", report.SuccessRate*100)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("usage: bets <list|place <fixture-id> <stake>|settle>")
}
