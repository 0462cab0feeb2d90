// Package app wires configuration, the provider client, repositories and
// services into runnable commands.
package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/arifwdtm/starpick/external/apifootball"
	"github.com/arifwdtm/starpick/internal/artifact"
	"github.com/arifwdtm/starpick/internal/config"
	"github.com/arifwdtm/starpick/internal/domain/bet"
	"github.com/arifwdtm/starpick/internal/domain/rating"
	"github.com/arifwdtm/starpick/internal/infrastructure/repository/file"
	"github.com/arifwdtm/starpick/internal/infrastructure/repository/postgres"
	"github.com/arifwdtm/starpick/internal/platform/logging"
	"github.com/arifwdtm/starpick/internal/usecase"
)

// App holds the wired service graph for one process.
type App struct {
	Run    *usecase.RunService
	Bets   *usecase.BetService
	Ledger *usecase.LedgerService

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	client := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:        cfg.APIBaseURL,
		APIKey:         cfg.APIKey,
		Season:         cfg.APISeason,
		Timeout:        cfg.APITimeout,
		Logger:         logger,
		CircuitBreaker: cfg.CircuitBreaker(),
	})

	executor := usecase.NewFetchExecutor(cfg.RetryPolicy(), logger)
	store := artifact.NewStore(cfg.DataDir)
	acquisition := usecase.NewAcquisitionService(store, executor, client, logger)

	a := &App{}

	var ledgerRepo rating.Repository
	var betsRepo bet.Repository
	if cfg.PostgresEnabled {
		db, err := sqlx.Connect("postgres", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.db = db
		ledgerRepo = postgres.NewLedgerRepository(db)
		betsRepo = postgres.NewBetsRepository(db)
	} else {
		ledgerRepo = file.NewLedgerRepository(cfg.DataDir)
		betsRepo = file.NewBetsRepository(cfg.DataDir)
	}

	ledgerSvc := usecase.NewLedgerService(ledgerRepo, logger)
	filter := usecase.NewEligibilityFilter(cfg.AllowedStatuses, cfg.AllowedCountries, logger)

	a.Ledger = ledgerSvc
	a.Run = usecase.NewRunService(
		acquisition,
		ledgerSvc,
		filter,
		rating.DefaultWeights(),
		cfg.MinRankGap,
		cfg.KeyPlayerRating,
		logger,
	)
	a.Bets = usecase.NewBetService(betsRepo, ledgerSvc, acquisition, logger)

	return a, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
