package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/checkout"
	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/events"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/lineitem"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/fjod/go_cart/storefront/internal/platform/metrics"
	cartgrpc "github.com/fjod/go_cart/storefront/internal/transport/grpc"
	carthttp "github.com/fjod/go_cart/storefront/internal/transport/http"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/reflection"
)

func main() {
	configFile := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		zap.NewExample().Fatal("Failed to load config", zap.Error(err))
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).With(zap.String("service", cfg.ServiceName))
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if cfg.InsecureSecret() {
		log.Warn("JWT_SECRET is the built-in default, set it before exposing the service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog
	repo, err := catalog.NewRepository(cfg.CatalogDriver, cfg.CatalogDSN)
	if err != nil {
		log.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer repo.Close()
	if err := repo.RunMigrations(); err != nil {
		log.Fatal("Failed to migrate catalog", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}
	products := catalog.NewCachedReader(repo, catalog.NewRedisCache(redisClient, cfg.CatalogCacheTTL), log)

	// Line items
	mongoDB, err := lineitem.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(context.Background())

	remote := lineitem.NewMongoStore(mongoDB, products, log)
	if err := remote.CreateIndexes(ctx); err != nil {
		log.Fatal("Failed to create cart indexes", zap.Error(err))
	}
	store := lineitem.ByMode{
		Local:  lineitem.NewLocalStore(lineitem.NewRedisSlots(redisClient, cfg.LocalSlotTTL), log),
		Remote: remote,
	}
	log.Info("Cart stores ready", zap.String("mongo", cfg.MongoDatabase), zap.String("redis", cfg.RedisAddr))

	m := metrics.NewManager(cfg.ServiceName)
	opts := []cart.Option{
		cart.WithLogger(log),
		cart.WithNotifier(cart.LogNotifier{Log: log.Named("notices")}),
		cart.WithObserver(m),
	}

	var publisher *events.SnapshotPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewSnapshotPublisher(cfg.KafkaBrokers, cfg.SnapshotTopic, log)
		defer publisher.Close()
		opts = append(opts, cart.WithSubscriber(publisher.Subscriber()))
	}
	carts := cart.NewManager(store, products, opts...)

	if cfg.CheckoutEndpoint == "" {
		log.Warn("CHECKOUT_ENDPOINT is not set, checkout requests will fail")
	}
	checkoutSvc := checkout.NewService(
		checkout.NewHTTPClient(cfg.CheckoutEndpoint, cfg.RequestTimeout, log),
		cfg.CheckoutSuccessURL,
		cfg.CheckoutCancelURL,
		log,
	)
	verifier := identity.NewVerifier(cfg.JWTSecret, cfg.ServiceName, 24*time.Hour)

	httpServer := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: carthttp.NewRouter(carthttp.Deps{
			Carts:          carts,
			Checkout:       checkoutSvc,
			Products:       repo,
			Verifier:       verifier,
			Metrics:        m,
			Log:            log,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcServer := cartgrpc.NewServer(carts, verifier, m, log)
	reflection.Register(grpcServer)

	metricsServer := metrics.NewServer(cfg.MetricsPort, m.Registry)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return err
		}
		log.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})

	if metricsServer != nil {
		g.Go(func() error {
			log.Info("Metrics server listening", zap.String("addr", metricsServer.Addr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	if len(cfg.KafkaBrokers) > 0 {
		consumer := events.NewCheckoutConsumer(store, cfg.CheckoutTopic, cfg.ServiceName+"-checkout", log, cfg.KafkaBrokers...)
		g.Go(func() error {
			defer consumer.Close()
			return consumer.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down storefront...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP shutdown incomplete", zap.Error(err))
		}
		if metricsServer != nil {
			_ = metricsServer.Shutdown(shutdownCtx)
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			log.Warn("gRPC graceful stop timed out, forcing stop")
			grpcServer.Stop()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Storefront stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Storefront stopped")
}
