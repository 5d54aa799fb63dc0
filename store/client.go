package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/smartinsert/assetcache"
	"github.com/smartinsert/assetcache/metrics"
)

var storeCalls = metrics.MustRegisterCounterVec("store", "calls_total",
	"Backing store calls by operation and outcome.", "op", "outcome")

// Client adapts a Backend to the resolver. Reads never fail: a backend error
// is logged and the affected ids count as absent. Writes return their error.
type Client struct {
	backend Backend
	logger  *zap.Logger
	group   singleflight.Group
	calls   atomic.Uint64
}

var _ assetcache.Store = (*Client)(nil)

func NewClient(backend Backend, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{backend: backend, logger: logger}
}

// Calls is the number of backend round trips issued so far.
func (c *Client) Calls() uint64 {
	return c.calls.Load()
}

func (c *Client) record(op string, err error) {
	c.calls.Add(1)
	outcome := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	storeCalls.WithLabelValues(op, outcome).Inc()
}

// GetOne loads a single asset. Concurrent loads of the same id share one
// backend call.
func (c *Client) GetOne(ctx context.Context, id string) (assetcache.Asset, bool) {
	v, err, _ := c.group.Do(id, func() (any, error) {
		data, err := c.backend.Get(ctx, id)
		c.record("get", err)
		if err != nil {
			return nil, err
		}
		return Decode(data)
	})
	if errors.Is(err, ErrNotFound) {
		return assetcache.Asset{}, false
	}
	if err != nil {
		c.logger.Error("store read failed", zap.String("id", id), zap.Error(err))
		return assetcache.Asset{}, false
	}
	return v.(assetcache.Asset), true
}

// GetMany returns the present assets in the order of ids.
func (c *Client) GetMany(ctx context.Context, ids []string) []assetcache.Asset {
	if len(ids) == 0 {
		return nil
	}
	raw, err := c.backend.GetMany(ctx, ids)
	c.record("get_many", err)
	if err != nil {
		c.logger.Error("store batch read failed", zap.Int("ids", len(ids)), zap.Error(err))
		return nil
	}
	out := make([]assetcache.Asset, 0, len(raw))
	for _, id := range ids {
		data, ok := raw[id]
		if !ok {
			continue
		}
		a, err := Decode(data)
		if err != nil {
			c.logger.Warn("skipping corrupt record", zap.String("id", id), zap.Error(err))
			continue
		}
		out = append(out, a)
	}
	return out
}

func (c *Client) PutMany(ctx context.Context, assets []assetcache.Asset) error {
	records := make([]Record, 0, len(assets))
	for _, a := range assets {
		rec, err := Encode(a)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	err := c.backend.PutMany(ctx, records)
	c.record("put_many", err)
	if err != nil {
		return fmt.Errorf("storing %d assets: %w", len(records), err)
	}
	return nil
}

// Count returns the number of stored ids, or 0 if the backend cannot say.
func (c *Client) Count(ctx context.Context) int {
	n, err := c.backend.Count(ctx)
	c.record("count", err)
	if err != nil {
		c.logger.Error("store count failed", zap.Error(err))
		return 0
	}
	return int(n)
}

// AllIDs lists every stored id. Unlike the other reads it returns the error,
// since startup cannot partition an unknown id set.
func (c *Client) AllIDs(ctx context.Context) ([]string, error) {
	ids, err := c.backend.Members(ctx)
	c.record("members", err)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return ids, nil
}

func (c *Client) Healthy(ctx context.Context) bool {
	err := c.backend.Ping(ctx)
	if err != nil {
		c.logger.Warn("store ping failed", zap.Error(err))
	}
	return err == nil
}

func (c *Client) Close() error {
	return c.backend.Close()
}
