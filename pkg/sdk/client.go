package shopdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/shopdex/internal/db"
	dbRedis "github.com/kailas-cloud/shopdex/internal/db/redis"
	domprod "github.com/kailas-cloud/shopdex/internal/domain/product"
	"github.com/kailas-cloud/shopdex/internal/domain/search/aggregation"
	"github.com/kailas-cloud/shopdex/internal/domain/search/criteria"
	productrepo "github.com/kailas-cloud/shopdex/internal/repository/product"
	searchrepo "github.com/kailas-cloud/shopdex/internal/repository/search"
	healthuc "github.com/kailas-cloud/shopdex/internal/usecase/health"
	productuc "github.com/kailas-cloud/shopdex/internal/usecase/product"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so services can be swapped in tests.
type productUseCase interface {
	Create(ctx context.Context, d domprod.Draft) (domprod.Product, error)
	CreateMany(ctx context.Context, drafts []domprod.Draft) ([]domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
	Update(ctx context.Context, id string, d domprod.Draft) (domprod.Product, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
}

type searchUseCase interface {
	Find(ctx context.Context, q criteria.Query, pageNum, size int) (searchuc.ProductPage, error)
	Advanced(ctx context.Context, params criteria.Params, pageNum, size int) (searchuc.ProductPage, error)
	List(ctx context.Context, q criteria.Query) ([]domprod.Product, error)
	Count(ctx context.Context, q criteria.Query) (int64, error)
	Suggest(ctx context.Context, input string) ([]string, error)
	Aggregations(ctx context.Context) (aggregation.Summary, error)
}

type indexManager interface {
	EnsureIndex(ctx context.Context) (bool, error)
	DropIndex(ctx context.Context) error
}

// Client is the shopdex SDK entry point.
type Client struct {
	store     db.Store
	index     indexManager
	products  productUseCase
	search    searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a shopdex Client and connects to Redis.
// The provided context is used for the readiness check and optional index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		indexName: DefaultIndexName,
		keyPrefix: DefaultKeyPrefix,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("shopdex: database address required (use WithRedis or WithAddrs)")
	}
	if cfg.indexName == "" || cfg.keyPrefix == "" {
		return nil, errors.New("shopdex: index name and key prefix must not be empty")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Username:   cfg.username,
		Password:   cfg.password,
		DB:         cfg.db,
		ClientName: "shopdex-sdk",
	})
	if err != nil {
		return nil, fmt.Errorf("shopdex: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("shopdex: database not ready: %w", err)
	}

	c := wireClient(store, cfg, obs)
	if cfg.ensureIndex {
		if _, err := c.EnsureIndex(ctx); err != nil {
			store.Close()
			return nil, err
		}
	}
	return c, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	prodRepo := productrepo.New(store, cfg.indexName, cfg.keyPrefix)
	srchRepo := searchrepo.New(store, cfg.indexName)

	products := productuc.New(prodRepo)
	if cfg.maxBatchSize > 0 {
		products = products.WithMaxBatchSize(cfg.maxBatchSize)
	}
	search := searchuc.New(srchRepo).WithPagination(cfg.defaultPageSize, cfg.maxPageSize)

	return &Client{
		store:     store,
		index:     prodRepo,
		products:  products,
		search:    search,
		healthSvc: healthuc.New(store, srchRepo),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := c.obs.start()
	defer func() { c.obs.observe("ping", start, -1, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the product index if it does not exist.
// Returns true when the index was created.
func (c *Client) EnsureIndex(ctx context.Context) (created bool, err error) {
	start := c.obs.start()
	defer func() { c.obs.observe("ensure_index", start, -1, err) }()

	created, err = c.index.EnsureIndex(ctx)
	if err != nil {
		return false, fmt.Errorf("ensure index: %w", err)
	}
	return created, nil
}

// DropIndex removes the product index. Stored products are kept.
func (c *Client) DropIndex(ctx context.Context) (err error) {
	start := c.obs.start()
	defer func() { c.obs.observe("drop_index", start, -1, err) }()

	if err = c.index.DropIndex(ctx); err != nil {
		return fmt.Errorf("drop index: %w", err)
	}
	return nil
}

// Products returns the catalogue write service.
func (c *Client) Products() *ProductService {
	return &ProductService{svc: c.products, obs: c.obs}
}

// Search returns the query service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.search, obs: c.obs}
}
