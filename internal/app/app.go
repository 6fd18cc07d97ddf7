package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/cricket-scorer/internal/config"
	"github.com/riskibarqy/cricket-scorer/internal/domain/careerstats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/delivery"
	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
	"github.com/riskibarqy/cricket-scorer/internal/domain/player"
	"github.com/riskibarqy/cricket-scorer/internal/domain/stats"
	"github.com/riskibarqy/cricket-scorer/internal/domain/team"
	"github.com/riskibarqy/cricket-scorer/internal/infrastructure/notify"
	repocache "github.com/riskibarqy/cricket-scorer/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cricket-scorer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-scorer/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/cricket-scorer/internal/interfaces/httpapi"
	"github.com/riskibarqy/cricket-scorer/internal/platform/cache"
	idgen "github.com/riskibarqy/cricket-scorer/internal/platform/id"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorer/internal/platform/resilience"
	"github.com/riskibarqy/cricket-scorer/internal/usecase"
)

// repositories is the storage set the services are built on.
type repositories struct {
	teams      team.Repository
	players    player.Repository
	matches    match.Repository
	deliveries delivery.Repository
	careers    careerstats.Repository
}

// NewHTTPServer builds the scoring service. The returned cleanup releases the
// database, the notification pool and the broker connection.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var cleanups []func() error
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			if err := cleanups[i](); err != nil {
				logger.Warn("cleanup failed", "error", err)
			}
		}
	}

	repos, closeRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanups = append(cleanups, closeRepos)

	hub, err := notify.NewHub(cfg.NotifyWorkers, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cleanups = append(cleanups, func() error {
		hub.Close()
		return nil
	})

	sinks := []notify.Sink{hub}
	if cfg.AMQPEnabled {
		publisher := notify.NewAMQPPublisher(notify.AMQPConfig{
			URL:      cfg.AMQPURL,
			Exchange: cfg.AMQPExchange,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AMQPCircuitEnabled,
				FailureThreshold: cfg.AMQPCircuitFailureCount,
				OpenTimeout:      cfg.AMQPCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AMQPCircuitHalfOpenMaxReq,
			},
		}, logger)
		sinks = append(sinks, publisher)
		cleanups = append(cleanups, publisher.Close)
	}

	// Summary snapshots are keyed by match version, so stale entries only age out.
	snapshots := cache.NewStore[stats.Summary](cfg.CacheTTL)

	careerSvc := usecase.NewCareerService(repos.matches, repos.deliveries, repos.careers, cfg.CareerRebuildWorkers, logger)
	handler := httpapi.NewHandler(
		usecase.NewTeamService(repos.teams, repos.players),
		usecase.NewMatchService(repos.matches, repos.teams, idgen.NewUUIDGenerator("match"), cfg.MatchDefaultOvers, logger),
		usecase.NewScoringService(
			repos.matches,
			repos.deliveries,
			repos.players,
			repos.teams,
			notify.NewFanout(sinks...),
			careerSvc,
			idgen.NewUUIDGenerator("dlv"),
			logger,
		),
		usecase.NewQueryService(repos.matches, repos.deliveries, repos.players, repos.teams, repos.careers, snapshots),
		careerSvc,
		hub,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos   repositories
		closeFn = func() error { return nil }
	)

	if !cfg.UsesDatabase() {
		matches := memory.NewMatchRepository()
		repos = repositories{
			teams:      memory.NewTeamRepository(memory.SeedTeams()),
			players:    memory.NewPlayerRepository(memory.SeedPlayers()),
			matches:    matches,
			deliveries: matches,
			careers:    memory.NewCareerRepository(),
		}
		logger.Info("storage ready", "backend", "memory")
	} else {
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("ping database: %w", err)
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, err
		}
		repos = repositories{
			teams:      postgres.NewTeamRepository(db),
			players:    postgres.NewPlayerRepository(db),
			matches:    postgres.NewMatchRepository(db),
			deliveries: postgres.NewDeliveryRepository(db),
			careers:    postgres.NewCareerRepository(db),
		}
		closeFn = db.Close
		logger.Info("storage ready", "backend", "postgres", "db_name", DatabaseName(cfg.DBURL))
	}

	if cfg.CacheEnabled {
		repos.teams = repocache.NewTeamRepository(repos.teams, cfg.CacheTTL)
		repos.players = repocache.NewPlayerRepository(repos.players, cfg.CacheTTL)
	}
	return repos, closeFn, nil
}

// OpenDB opens a traced Postgres handle for commands that need the database directly.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	if !cfg.UsesDatabase() {
		return nil, errors.New("DB_URL is required")
	}
	return openDB(cfg)
}
