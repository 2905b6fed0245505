package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/leaguehq/league-api/internal/config"
	"github.com/leaguehq/league-api/internal/domain/fixture"
	"github.com/leaguehq/league-api/internal/domain/team"
	"github.com/leaguehq/league-api/internal/domain/user"
	"github.com/leaguehq/league-api/internal/infrastructure/repository/memory"
	"github.com/leaguehq/league-api/internal/infrastructure/repository/postgres"
	"github.com/leaguehq/league-api/internal/interfaces/httpapi"
	"github.com/leaguehq/league-api/internal/platform/cache"
	"github.com/leaguehq/league-api/internal/platform/logging"
	"github.com/leaguehq/league-api/internal/usecase"
)

type repositories struct {
	users    user.Repository
	teams    team.Repository
	fixtures fixture.Repository
}

// NewHTTPServer wires repositories, services and the HTTP layer into a
// ready-to-run server. With DB_URL set it runs against postgres,
// otherwise against the in-memory repositories.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var listCache *cache.Store
	if cfg.CacheEnabled {
		listCache = cache.NewStore(cfg.CacheTTL)
	}

	authSvc := usecase.NewAuthService(repos.users, listCache, cfg.BcryptCost)
	userSvc := usecase.NewUserService(repos.users, listCache)
	teamSvc := usecase.NewTeamService(repos.teams, listCache)
	fixtureSvc := usecase.NewFixtureService(repos.fixtures, repos.teams)

	handler := httpapi.NewHandler(authSvc, userSvc, teamSvc, fixtureSvc, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.DBURL == "" {
		userRepo := memory.NewUserRepository()
		teamRepo := memory.NewTeamRepository()
		fixtureRepo := memory.NewFixtureRepository(teamRepo)

		if cfg.SeedEnabled {
			if err := memory.Seed(ctx, userRepo, teamRepo, fixtureRepo, cfg.BcryptCost); err != nil {
				return repositories{}, errors.Wrap(err, "seed memory repositories")
			}
		}

		logger.Info("using in-memory repositories", "seeded", cfg.SeedEnabled)
		return repositories{users: userRepo, teams: teamRepo, fixtures: fixtureRepo}, nil
	}

	// otelsqlx instruments every query with spans, matching the
	// otelhttp middleware on the serving side.
	db, err := otelsqlx.ConnectContext(ctx, "postgres", cfg.DBURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return repositories{}, errors.Wrap(err, "connect postgres")
	}

	userRepo := postgres.NewUserRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	fixtureRepo := postgres.NewFixtureRepository(db)

	if cfg.SeedEnabled {
		if err := postgres.Seed(ctx, userRepo, teamRepo, fixtureRepo, cfg.BcryptCost); err != nil {
			return repositories{}, errors.Wrap(err, "seed postgres repositories")
		}
	}

	logger.Info("using postgres repositories", "database", dbNameFromURL(cfg.DBURL), "seeded", cfg.SeedEnabled)
	return repositories{users: userRepo, teams: teamRepo, fixtures: fixtureRepo}, nil
}
