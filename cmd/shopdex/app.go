package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/config"
	dbRedis "github.com/kailas-cloud/shopdex/internal/db/redis"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	logpkg "github.com/kailas-cloud/shopdex/internal/logger"
	productrepo "github.com/kailas-cloud/shopdex/internal/repository/product"
	searchrepo "github.com/kailas-cloud/shopdex/internal/repository/search"
	healthuc "github.com/kailas-cloud/shopdex/internal/usecase/health"
	productuc "github.com/kailas-cloud/shopdex/internal/usecase/product"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
)

// app is the composition root shared by all subcommands.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	store  *dbRedis.Store

	productRepo *productrepo.Repo
	searchRepo  *searchrepo.Repo

	products *productuc.Service
	search   *searchuc.Service
	health   *healthuc.Service
}

// bootstrap loads config, connects to Redis and builds the service graph.
func bootstrap(ctx context.Context, envName string) (*app, error) {
	env := envName
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("create database store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.Strings("db_addrs", cfg.Database.Addrs))

	a := &app{
		env:         env,
		cfg:         cfg,
		logger:      logger,
		store:       store,
		productRepo: productrepo.New(store, cfg.Search.IndexName, cfg.Search.KeyPrefix),
		searchRepo:  searchrepo.New(store, cfg.Search.IndexName),
	}

	a.products = productuc.New(a.productRepo).
		WithMaxBatchSize(cfg.Search.MaxBatchSize)
	a.search = searchuc.New(searchuc.NewInstrumentedRepository(a.searchRepo, logger)).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize).
		WithMaxListSize(cfg.Search.MaxListSize).
		WithSuggestionLimit(cfg.Search.SuggestionLimit).
		WithAggregation(aggregation.Options{
			TermsSize:     cfg.Search.TermsSize,
			PriceInterval: cfg.Search.PriceInterval,
		})
	a.health = healthuc.New(store, a.searchRepo)

	return a, nil
}

// ensureIndex creates the product index when it is missing.
func (a *app) ensureIndex(ctx context.Context) error {
	created, err := a.productRepo.EnsureIndex(ctx)
	if err != nil {
		return fmt.Errorf("ensure index %s: %w", a.cfg.Search.IndexName, err)
	}
	if created {
		a.logger.Info("Created search index", zap.String("index", a.cfg.Search.IndexName))
	}
	return nil
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}
