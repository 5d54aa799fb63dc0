package registry

import (
	"context"
	"fmt"
	"slices"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/naming/endpoints"
	"go.etcd.io/etcd/client/v3/naming/resolver"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Discover lists the addresses registered under service, sorted, without self.
// Every instance sees the same order, which is the peer fan-out order.
func Discover(ctx context.Context, cli *clientv3.Client, service, self string) ([]string, error) {
	em, err := endpoints.NewManager(cli, service)
	if err != nil {
		return nil, fmt.Errorf("endpoint manager for %s: %w", service, err)
	}
	eps, err := em.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", service, err)
	}
	return peerAddrs(eps, self), nil
}

func peerAddrs(eps endpoints.Key2EndpointMap, self string) []string {
	addrs := make([]string, 0, len(eps))
	for _, ep := range eps {
		if ep.Addr != "" && ep.Addr != self {
			addrs = append(addrs, ep.Addr)
		}
	}
	slices.Sort(addrs)
	return slices.Compact(addrs)
}

// EtcdDial returns a connection that resolves service through etcd and
// balances calls over every registered instance.
func EtcdDial(cli *clientv3.Client, service string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	etcdResolver, err := resolver.NewBuilder(cli)
	if err != nil {
		return nil, err
	}
	opts = append([]grpc.DialOption{
		grpc.WithResolvers(etcdResolver),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultServiceConfig(`{"loadBalancingConfig":[{"round_robin":{}}]}`),
	}, opts...)
	return grpc.NewClient("etcd:///"+service, opts...)
}

// Watch calls fn with the sorted addresses registered under service, without
// self, whenever that list changes. The first call carries the instances
// registered when the watch started. Watch blocks until ctx is done.
func Watch(ctx context.Context, cli *clientv3.Client, service, self string, fn func([]string)) error {
	em, err := endpoints.NewManager(cli, service)
	if err != nil {
		return fmt.Errorf("endpoint manager for %s: %w", service, err)
	}
	wch, err := em.NewWatchChannel(ctx)
	if err != nil {
		return fmt.Errorf("watching %s: %w", service, err)
	}
	follow(wch, self, fn)
	return ctx.Err()
}

// follow folds endpoint updates into the current membership until updates is
// closed, reporting only lists that differ from the previous one.
func follow(updates <-chan []*endpoints.Update, self string, fn func([]string)) {
	eps := make(endpoints.Key2EndpointMap)
	var last []string
	for batch := range updates {
		for _, up := range batch {
			switch up.Op {
			case endpoints.Add:
				eps[up.Key] = up.Endpoint
			case endpoints.Delete:
				delete(eps, up.Key)
			}
		}
		addrs := peerAddrs(eps, self)
		if last != nil && slices.Equal(addrs, last) {
			continue
		}
		last = addrs
		fn(addrs)
	}
}
