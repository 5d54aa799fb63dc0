// Command assetctl queries and load tests assetd instances.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartinsert/assetcache"
	"github.com/smartinsert/assetcache/registry"
	"github.com/smartinsert/assetcache/store"
)

const (
	flagServers           = "servers"
	flagRegistryEndpoints = "registry-endpoints"
	flagService           = "service"
	flagTimeout           = "timeout"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "assetctl",
		Short:        "Client for the asset lookup service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSlice(flagServers, []string{"localhost:9090"}, "assetd addresses")
	root.PersistentFlags().StringSlice(flagRegistryEndpoints, nil, "discover servers in this etcd cluster instead")
	root.PersistentFlags().String(flagService, "assetcache", "service name in the registry")
	root.PersistentFlags().Duration(flagTimeout, time.Minute, "deadline of one request")
	root.AddCommand(newGetCmd(), newBenchCmd())
	return root
}

// servers resolves the target addresses, from the registry when endpoints are given.
func servers(cmd *cobra.Command) ([]string, error) {
	endpoints, err := cmd.Flags().GetStringSlice(flagRegistryEndpoints)
	if err != nil {
		return nil, err
	}
	if len(endpoints) == 0 {
		return cmd.Flags().GetStringSlice(flagServers)
	}
	service, err := cmd.Flags().GetString(flagService)
	if err != nil {
		return nil, err
	}
	cli, err := store.DialEtcd(endpoints, 5*time.Second, zap.NewNop())
	if err != nil {
		return nil, err
	}
	defer cli.Close()
	addrs, err := registry.Discover(cmd.Context(), cli, service, "")
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no %s instances registered", service)
	}
	return addrs, nil
}

// dialRegistry connects through the etcd resolver, balancing over every
// registered instance.
func dialRegistry(cmd *cobra.Command) (*assetcache.Client, func(), error) {
	endpoints, err := cmd.Flags().GetStringSlice(flagRegistryEndpoints)
	if err != nil {
		return nil, nil, err
	}
	if len(endpoints) == 0 {
		return nil, nil, fmt.Errorf("--%s is required", flagRegistryEndpoints)
	}
	service, err := cmd.Flags().GetString(flagService)
	if err != nil {
		return nil, nil, err
	}
	cli, err := store.DialEtcd(endpoints, 5*time.Second, zap.NewNop())
	if err != nil {
		return nil, nil, err
	}
	conn, err := registry.EtcdDial(cli, service, assetcache.DialOptions()...)
	if err != nil {
		cli.Close()
		return nil, nil, err
	}
	c := assetcache.NewClient(conn)
	return c, func() {
		c.Close()
		cli.Close()
	}, nil
}

func dialAll(addrs []string) ([]*assetcache.Client, func(), error) {
	clients := make([]*assetcache.Client, 0, len(addrs))
	closeAll := func() {
		for _, c := range clients {
			c.Close()
		}
	}
	for _, addr := range addrs {
		c, err := assetcache.Dial(addr)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		clients = append(clients, c)
	}
	return clients, closeAll, nil
}
