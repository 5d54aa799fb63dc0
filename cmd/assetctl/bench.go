package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/smartinsert/assetcache"
	"github.com/smartinsert/assetcache/consistenthash"
	"github.com/smartinsert/assetcache/datagen"
)

const (
	routeRoundRobin = "roundrobin"
	routeHash       = "hash"
	// routeRegistry leaves the choice to a round robin balancer over the registry.
	routeRegistry = "registry"
)

type benchOptions struct {
	count        int
	batchSize    int
	subBatchSize int
	concurrency  int
	route        string
	timeout      time.Duration
}

type benchResult struct {
	requested int
	received  atomic.Int64
	batches   atomic.Int64
	failed    atomic.Int64
	elapsed   time.Duration
}

func newBenchCmd() *cobra.Command {
	var opts benchOptions
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Request generated ids in batches spread across the servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.timeout, err = cmd.Flags().GetDuration(flagTimeout); err != nil {
				return err
			}
			var clients []*assetcache.Client
			if opts.route == routeRegistry {
				c, closeFn, err := dialRegistry(cmd)
				if err != nil {
					return err
				}
				defer closeFn()
				clients, opts.route = []*assetcache.Client{c}, routeRoundRobin
			} else {
				addrs, err := servers(cmd)
				if err != nil {
					return err
				}
				var closeAll func()
				if clients, closeAll, err = dialAll(addrs); err != nil {
					return err
				}
				defer closeAll()
			}

			res, err := runBench(cmd.Context(), clients, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), res, opts)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.count, "count", 100000, "ids to request")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 1000, "ids per request")
	cmd.Flags().IntVar(&opts.subBatchSize, "sub-batch-size", 0, "server side sub-batch size, 0 for the batch size")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 1, "requests in flight")
	cmd.Flags().StringVar(&opts.route, "route", routeRoundRobin, "server choice per batch: roundrobin, hash or registry")
	return cmd
}

// router picks the server for the i-th batch.
type router func(i int, batch []string) *assetcache.Client

func newRouter(kind string, clients []*assetcache.Client) (router, error) {
	switch kind {
	case routeRoundRobin:
		return func(i int, _ []string) *assetcache.Client {
			return clients[i%len(clients)]
		}, nil
	case routeHash:
		ring := consistenthash.New(50, nil)
		byAddr := make(map[string]*assetcache.Client, len(clients))
		for _, c := range clients {
			ring.Add(c.Addr())
			byAddr[c.Addr()] = c
		}
		return func(_ int, batch []string) *assetcache.Client {
			return byAddr[ring.Get(batch[0])]
		}, nil
	default:
		return nil, fmt.Errorf("unknown route %q", kind)
	}
}

func runBench(ctx context.Context, clients []*assetcache.Client, opts benchOptions, log io.Writer) (*benchResult, error) {
	if opts.count < 1 || opts.batchSize < 1 {
		return nil, fmt.Errorf("count and batch size must be positive")
	}
	if opts.subBatchSize <= 0 {
		opts.subBatchSize = opts.batchSize
	}
	route, err := newRouter(opts.route, clients)
	if err != nil {
		return nil, err
	}
	ids := datagen.ScrambledIDs(opts.count)
	res := &benchResult{requested: len(ids)}

	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(opts.concurrency, 1))
	for i := 0; i*opts.batchSize < len(ids); i++ {
		from := i * opts.batchSize
		batch := ids[from:min(from+opts.batchSize, len(ids))]
		c := route(i, batch)
		eg.Go(func() error {
			reqCtx, cancel := context.WithTimeout(ctx, opts.timeout)
			defer cancel()
			err := c.GetAssets(reqCtx, batch, opts.subBatchSize, func(r assetcache.PartialResponse) error {
				res.received.Add(int64(r.Found))
				return nil
			})
			if err != nil {
				res.failed.Add(1)
				fmt.Fprintf(log, "batch %d on %s: %v\n", i+1, c.Addr(), err)
				return nil
			}
			res.batches.Add(1)
			return nil
		})
	}
	err = eg.Wait()
	res.elapsed = time.Since(start)
	return res, err
}

func report(w io.Writer, res *benchResult, opts benchOptions) {
	batches := res.batches.Load()
	received := res.received.Load()
	fmt.Fprintf(w, "total time:        %s\n", res.elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "assets requested:  %d\n", res.requested)
	fmt.Fprintf(w, "assets received:   %d\n", received)
	fmt.Fprintf(w, "batches processed: %d (%d failed)\n", batches, res.failed.Load())
	if batches > 0 {
		fmt.Fprintf(w, "average batch:     %s for batch size %d\n",
			(res.elapsed / time.Duration(batches)).Round(time.Millisecond), opts.batchSize)
	}
	if secs := res.elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, "throughput:        %.0f assets/s\n", float64(received)/secs)
	}
	fmt.Fprintf(w, "success rate:      %.2f%%\n", float64(received)*100/float64(res.requested))
}
