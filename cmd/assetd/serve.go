package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"

	"github.com/smartinsert/assetcache"
	"github.com/smartinsert/assetcache/config"
	"github.com/smartinsert/assetcache/registry"
	"github.com/smartinsert/assetcache/store"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Warm the cache partition and serve the gRPC API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := serve(ctx, cfg, logger.With(zap.String("instance", cfg.InstanceName()))); err != nil {
				logger.Error("assetd stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	bindConfig(cmd)
	return cmd
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	backend, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	st := store.NewClient(backend, logger.Named("store"))
	defer st.Close()

	if cfg.Seed.Enabled {
		if err := seedStore(ctx, st, cfg.Seed, false, logger); err != nil {
			return err
		}
	}

	cache := assetcache.NewLocalCache(assetcache.CacheOptions{
		MaxEntries:        cfg.Cache.MaxEntries,
		Shards:            cfg.Cache.Shards,
		ExpireAfterAccess: cfg.Cache.ExpireAfterAccess,
		ExpireAfterWrite:  cfg.Cache.ExpireAfterWrite,
	})
	if _, err := assetcache.Populate(ctx, cache, st, cfg.Partition, assetcache.PopulateOptions{
		Logger: logger.Named("partition"),
	}); err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}

	var etcd *clientv3.Client
	peerAddrs := cfg.Peers
	// without a static list the registry owns membership and is watched below
	watchPeers := cfg.Registry.Enabled && len(peerAddrs) == 0
	if cfg.Registry.Enabled {
		etcd, err = store.DialEtcd(cfg.Registry.Endpoints, cfg.Store.DialTimeout, logger.Named("registry"))
		if err != nil {
			return err
		}
		defer etcd.Close()
		if watchPeers {
			if peerAddrs, err = registry.Discover(ctx, etcd, cfg.Registry.Service, cfg.Advertise()); err != nil {
				return err
			}
		}
	}
	peerSet := assetcache.NewPeerSet(cfg.Advertise(), logger.Named("peers"))
	defer peerSet.Close()
	peers, err := peerSet.Update(peerAddrs)
	if err != nil {
		return err
	}
	fanout := assetcache.NewPeerFanout(peers, cache, assetcache.FanoutOptions{
		PeerTimeout: cfg.PeerTimeout,
		Timeout:     cfg.FanoutTimeout,
		Logger:      logger.Named("fanout"),
	})
	if watchPeers {
		watchCtx, stopWatch := context.WithCancel(ctx)
		watched := make(chan struct{})
		defer func() {
			stopWatch()
			<-watched
		}()
		go func() {
			defer close(watched)
			err := registry.Watch(watchCtx, etcd, cfg.Registry.Service, cfg.Advertise(), func(addrs []string) {
				peers, err := peerSet.Update(addrs)
				if err != nil {
					logger.Warn("ignoring peer update", zap.Strings("peers", addrs), zap.Error(err))
					return
				}
				fanout.SetPeers(peers)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("peer watch ended", zap.Error(err))
			}
		}()
	}

	pool := assetcache.NewPool(assetcache.PoolOptions{
		Workers:    cfg.Pool.Workers,
		MaxWorkers: cfg.Pool.MaxWorkers,
		QueueSize:  cfg.Pool.QueueSize,
	})
	defer pool.Close()

	resolver, err := assetcache.NewResolver(assetcache.Options{
		Instance:     cfg.InstanceName(),
		SubBatchSize: cfg.SubBatchSize,
		Cache:        cache,
		Store:        st,
		Peers:        fanout,
		Pool:         pool,
		Logger:       logger.Named("resolver"),
	})
	if err != nil {
		return err
	}
	defer resolver.Close()

	srv, err := assetcache.NewServer(resolver, assetcache.ServerOptions{
		Addr:           cfg.ListenAddr,
		HealthInterval: cfg.HealthInterval,
		Logger:         logger.Named("server"),
	})
	if err != nil {
		return err
	}

	errs := make(chan error, 2)
	go func() { errs <- srv.Start() }()

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("metrics endpoint: %w", err)
			}
		}()
	}

	var unregistered <-chan struct{}
	regCtx, unregister := context.WithCancel(context.Background())
	defer unregister()
	if etcd != nil {
		if unregistered, err = registry.Register(regCtx, etcd, cfg.Registry.Service, cfg.Advertise(), cfg.Registry.TTL, logger.Named("registry")); err != nil {
			srv.Stop()
			return err
		}
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errs:
	}

	unregister()
	if unregistered != nil {
		<-unregistered
	}
	srv.Stop()
	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		metricsSrv.Shutdown(shutdownCtx)
	}
	return err
}
