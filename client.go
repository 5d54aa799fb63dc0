package assetcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/smartinsert/assetcache/assetpb"
	"github.com/smartinsert/assetcache/utils"
)

// Client talks to one assetd instance. It is used both by peers, through
// FetchInternal, and by external callers of the streaming API.
type Client struct {
	addr   string
	conn   *grpc.ClientConn
	rpc    assetpb.AssetServiceClient
	health healthpb.HealthClient
}

var _ Fetcher = (*Client)(nil)

// DialOptions are the defaults for every connection to an assetd instance.
func DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
}

// Dial prepares a connection to addr. The connection is established lazily
// on the first call and reused afterwards.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := grpc.NewClient(addr, append(DialOptions(), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	return NewClient(conn), nil
}

// NewClient wraps conn. Closing the client closes conn.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{
		addr:   conn.Target(),
		conn:   conn,
		rpc:    assetpb.NewAssetServiceClient(conn),
		health: healthpb.NewHealthClient(conn),
	}
}

func (c *Client) Addr() string { return c.addr }

// GetAssets streams the resolution of ids, calling fn for every partial
// response in arrival order. fn returning an error stops the stream.
func (c *Client) GetAssets(ctx context.Context, ids []string, subBatchSize int, fn func(PartialResponse) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stream, err := c.rpc.GetAssets(ctx, &assetpb.AssetRequest{AssetIds: ids, BatchSize: int32(subBatchSize)})
	if err != nil {
		return fmt.Errorf("GetAssets on %s: %w", c.addr, err)
	}
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("GetAssets on %s: %w", c.addr, err)
		}
		if err := fn(FromResponse(resp)); err != nil {
			return err
		}
	}
}

// FetchInternal asks the instance for ids without letting it fan out further.
func (c *Client) FetchInternal(ctx context.Context, ids []string) ([]Asset, error) {
	resp, err := c.rpc.GetAssetsInternal(ctx, &assetpb.AssetRequest{AssetIds: ids})
	if err != nil {
		return nil, fmt.Errorf("GetAssetsInternal on %s: %w", c.addr, err)
	}
	return FromResponse(resp).Assets, nil
}

// Check reports whether the instance declares itself serving.
func (c *Client) Check(ctx context.Context) (bool, error) {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: assetpb.ServiceName})
	if err != nil {
		return false, err
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// PeerSet keeps one connection per sibling address and turns address lists
// into fan-out orders. Connections survive across updates that keep their
// address and are closed once the address disappears.
type PeerSet struct {
	self   string
	opts   []grpc.DialOption
	logger *zap.Logger

	mu      sync.Mutex
	clients map[string]*Client
}

func NewPeerSet(self string, logger *zap.Logger, opts ...grpc.DialOption) *PeerSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeerSet{
		self:    self,
		opts:    opts,
		logger:  logger,
		clients: make(map[string]*Client),
	}
}

// Update returns the fan-out order for addrs, keeping their order and leaving
// out self and repeats. An invalid address fails the whole update and leaves
// the set unchanged.
func (ps *PeerSet) Update(addrs []string) ([]Peer, error) {
	for _, addr := range addrs {
		if addr == ps.self {
			continue
		}
		if err := utils.ValidatePeerAddr(addr); err != nil {
			return nil, err
		}
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	next := make(map[string]*Client, len(addrs))
	peers := make([]Peer, 0, len(addrs))
	for _, addr := range addrs {
		if _, seen := next[addr]; seen || addr == ps.self {
			continue
		}
		c, ok := ps.clients[addr]
		if !ok {
			var err error
			if c, err = Dial(addr, ps.opts...); err != nil {
				// drop the connections this update opened
				for a, nc := range next {
					if _, old := ps.clients[a]; !old {
						nc.Close()
					}
				}
				return nil, err
			}
		}
		next[addr] = c
		peers = append(peers, Peer{Addr: addr, Fetcher: c})
	}
	for addr, c := range ps.clients {
		if _, keep := next[addr]; !keep {
			c.Close()
		}
	}
	ps.clients = next

	ps.logger.Info("peers configured",
		zap.Strings("peers", addrs), zap.String("self", ps.self), zap.Int("count", len(peers)))
	return peers, nil
}

// Close closes every connection in the set.
func (ps *PeerSet) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, c := range ps.clients {
		c.Close()
	}
	ps.clients = make(map[string]*Client)
}
