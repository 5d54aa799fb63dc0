// Package registry publishes assetd instances in etcd and finds them again.
// An instance lives under "<service>/<addr>" for as long as its lease is kept
// alive, in the endpoint format understood by the etcd gRPC resolver.
package registry

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/naming/endpoints"
	"go.uber.org/zap"
)

const defaultTTL = 10 * time.Second

func endpointKey(service, addr string) string {
	return service + "/" + addr
}

// Register adds addr to service and keeps it there until ctx is done, at which
// point the lease is revoked. The returned channel is closed once that happened
// or the keepalive was lost.
func Register(ctx context.Context, cli *clientv3.Client, service, addr string, ttl time.Duration, logger *zap.Logger) (<-chan struct{}, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	em, err := endpoints.NewManager(cli, service)
	if err != nil {
		return nil, fmt.Errorf("endpoint manager for %s: %w", service, err)
	}
	lease, err := cli.Grant(ctx, int64(ttl/time.Second))
	if err != nil {
		return nil, fmt.Errorf("granting lease: %w", err)
	}
	key := endpointKey(service, addr)
	if err := em.AddEndpoint(ctx, key, endpoints.Endpoint{Addr: addr}, clientv3.WithLease(lease.ID)); err != nil {
		return nil, fmt.Errorf("registering %s: %w", key, err)
	}
	alive, err := cli.KeepAlive(ctx, lease.ID)
	if err != nil {
		return nil, fmt.Errorf("keeping lease alive: %w", err)
	}
	logger.Info("registered in etcd", zap.String("key", key), zap.Duration("ttl", ttl))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range alive {
		}
		revokeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if _, err := cli.Revoke(revokeCtx, lease.ID); err != nil {
			logger.Warn("revoking lease failed", zap.String("key", key), zap.Error(err))
			return
		}
		logger.Info("unregistered from etcd", zap.String("key", key))
	}()
	return done, nil
}
