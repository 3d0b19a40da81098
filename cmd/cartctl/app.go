package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/lineitem"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds what one cartctl invocation opened, so it can be closed in
// reverse order when the command finishes.
type app struct {
	out        io.Writer
	configFile string
	userID     string
	namespace  string
	verbose    bool
	// catalogCache joins carts through the Redis product cache, as the
	// server does.
	catalogCache bool

	cfg     *config.Config
	log     *zap.Logger
	repo    *catalog.Repository
	cache   *catalog.RedisCache
	closers []func()
}

func (a *app) mode() domain.Mode {
	if a.userID != "" {
		return domain.Authenticated(a.userID)
	}
	return domain.AnonymousIn(a.namespace)
}

func (a *app) loadConfig() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{Level: level, Format: "console"})
	return nil
}

func (a *app) openCatalog() (*catalog.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	if err := a.loadConfig(); err != nil {
		return nil, err
	}
	repo, err := catalog.NewRepository(a.cfg.CatalogDriver, a.cfg.CatalogDSN)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { repo.Close() })
	if err := repo.RunMigrations(); err != nil {
		return nil, err
	}
	a.repo = repo
	return repo, nil
}

func (a *app) openCache(ctx context.Context) (*catalog.RedisCache, error) {
	if a.cache != nil {
		return a.cache, nil
	}
	if err := a.loadConfig(); err != nil {
		return nil, err
	}
	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	a.closers = append(a.closers, func() { client.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis unavailable at %s: %w", a.cfg.RedisAddr, err)
	}
	a.cache = catalog.NewRedisCache(client, a.cfg.CatalogCacheTTL)
	return a.cache, nil
}

// openProducts returns the reader carts are joined with.
func (a *app) openProducts(ctx context.Context) (catalog.Reader, error) {
	repo, err := a.openCatalog()
	if err != nil {
		return nil, err
	}
	if !a.catalogCache {
		return repo, nil
	}
	cache, err := a.openCache(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewCachedReader(repo, cache, a.log), nil
}

// invalidate drops ids from the product cache so readers see the change on
// their next lookup. A cache that cannot be reached is reported, not fatal:
// the catalog write already happened.
func (a *app) invalidate(ctx context.Context, ids ...string) {
	repo, err := a.openCatalog()
	if err != nil {
		return
	}
	cache, err := a.openCache(ctx)
	if err == nil {
		err = catalog.NewCachedReader(repo, cache, a.log).Invalidate(ctx, ids...)
	}
	if err != nil {
		a.log.Warn("product cache not invalidated", zap.Strings("product_ids", ids), zap.Error(err))
		fmt.Fprintf(a.out, "warning: product cache not invalidated: %v\n", err)
	}
}

func (a *app) openStore(ctx context.Context, products catalog.Reader) (lineitem.Store, error) {
	if a.userID == "" {
		slots, err := lineitem.NewFileSlots(a.cfg.LocalSlotDir)
		if err != nil {
			return nil, err
		}
		return lineitem.ByMode{Local: lineitem.NewLocalStore(slots, a.log)}, nil
	}

	db, err := lineitem.ConnectMongoDB(ctx, a.cfg.MongoURI, a.cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { db.Client().Disconnect(context.Background()) })
	return lineitem.ByMode{Remote: lineitem.NewMongoStore(db, products, a.log)}, nil
}

// openCart returns a loaded session for the selected mode. Notices are
// printed as they are emitted.
func (a *app) openCart(ctx context.Context) (*cart.Session, error) {
	products, err := a.openProducts(ctx)
	if err != nil {
		return nil, err
	}
	store, err := a.openStore(ctx, products)
	if err != nil {
		return nil, err
	}

	session := cart.NewSession(store, products, identity.Fixed(a.mode()),
		cart.WithLogger(a.log),
		cart.WithNotifier(cart.NotifierFunc(func(_ context.Context, n cart.Notice) {
			printNotice(a.out, n)
		})),
	)
	a.closers = append(a.closers, session.Close)

	if err := session.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return session, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	if a.log != nil {
		_ = a.log.Sync()
	}
}
