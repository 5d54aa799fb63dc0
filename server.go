package assetcache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/smartinsert/assetcache/assetpb"
)

const defaultHealthInterval = 10 * time.Second

// ServerOptions configures a Server.
type ServerOptions struct {
	// Addr is the listen address used by Start.
	Addr string
	// HealthInterval is how often the health status is recomputed.
	HealthInterval time.Duration
	Logger         *zap.Logger
}

// Server exposes a Resolver over gRPC. GetAssets is the public streaming
// entry point; GetAssetsInternal is what peers call and never fans out.
type Server struct {
	assetpb.UnimplementedAssetServiceServer

	addr           string
	resolver       *Resolver
	healthInterval time.Duration
	logger         *zap.Logger

	mu         sync.Mutex
	status     bool // true while serving
	grpcServer *grpc.Server
	health     *health.Server
	stop       chan struct{}
}

var _ assetpb.AssetServiceServer = (*Server)(nil)

func NewServer(resolver *Resolver, opts ServerOptions) (*Server, error) {
	if resolver == nil {
		return nil, errors.New("server: resolver is required")
	}
	if opts.HealthInterval <= 0 {
		opts.HealthInterval = defaultHealthInterval
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{
		addr:           opts.Addr,
		resolver:       resolver,
		healthInterval: opts.HealthInterval,
		logger:         opts.Logger,
	}, nil
}

// GetAssets resolves the requested ids in sub-batches and streams one response
// per sub-batch as each completes. A failed sub-batch ends the stream with an error.
func (s *Server) GetAssets(req *assetpb.AssetRequest, stream assetpb.AssetService_GetAssetsServer) error {
	start := time.Now()
	batch := fromRequest(req)
	ids := batch.IDs
	if len(ids) == 0 {
		return stream.Send(&assetpb.AssetResponse{ServerInstance: s.resolver.Instance()})
	}
	ctx := stream.Context()

	var sent, found int
	for res := range s.resolver.ResolveBatch(ctx, batch) {
		if res.Err != nil {
			s.logger.Error("batch failed",
				zap.Int("requested", len(ids)), zap.Int("sent", sent), zap.Error(res.Err))
			return toStatus(res.Err)
		}
		if err := stream.Send(toResponse(res.Response)); err != nil {
			return err
		}
		sent++
		found += res.Response.Found
	}
	s.logger.Info("batch streamed",
		zap.Int("requested", len(ids)), zap.Int("found", found),
		zap.Int("responses", sent), zap.Duration("took", time.Since(start)))
	return nil
}

// GetAssetsInternal answers a peer from the local cache and the backing store only.
func (s *Server) GetAssetsInternal(ctx context.Context, req *assetpb.AssetRequest) (*assetpb.AssetResponse, error) {
	resp := s.resolver.ResolveLocal(ctx, req.GetAssetIds())
	s.logger.Debug("internal request",
		zap.Int("requested", resp.Requested), zap.Int("found", resp.Found))
	return toResponse(resp), nil
}

func toStatus(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	return status.Errorf(codes.Internal, "resolving assets: %v", err)
}

// Start listens on the configured address and serves until Stop.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

// Serve registers the asset, health and reflection services on lis and blocks.
func (s *Server) Serve(lis net.Listener) error {
	s.mu.Lock()
	if s.status {
		s.mu.Unlock()
		return errors.New("server already started")
	}
	s.status = true
	s.stop = make(chan struct{})
	s.grpcServer = grpc.NewServer()
	s.health = health.NewServer()
	assetpb.RegisterAssetServiceServer(s.grpcServer, s)
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	reflection.Register(s.grpcServer)
	srv, stop := s.grpcServer, s.stop
	s.mu.Unlock()

	s.refreshHealth()
	go s.watchHealth(stop)

	s.logger.Info("asset server listening",
		zap.String("addr", lis.Addr().String()), zap.String("instance", s.resolver.Instance()))
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

func (s *Server) watchHealth(stop <-chan struct{}) {
	ticker := time.NewTicker(s.healthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.refreshHealth()
		}
	}
}

func (s *Server) refreshHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), s.healthInterval)
	defer cancel()
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if s.resolver.Healthy(ctx) {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.health == nil {
		return
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(assetpb.ServiceName, st)
}

// Stop drains in-flight streams and shuts the server down.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.status {
		s.mu.Unlock()
		return
	}
	s.status = false
	close(s.stop)
	srv, hs := s.grpcServer, s.health
	s.health = nil
	s.mu.Unlock()

	hs.Shutdown()
	srv.GracefulStop()
	s.logger.Info("asset server stopped", zap.String("instance", s.resolver.Instance()))
}

func fromRequest(req *assetpb.AssetRequest) BatchRequest {
	return BatchRequest{IDs: req.GetAssetIds(), SubBatchSize: int(req.GetBatchSize())}
}

func toResponse(r PartialResponse) *assetpb.AssetResponse {
	out := &assetpb.AssetResponse{
		Assets:           make([]*assetpb.Asset, len(r.Assets)),
		TotalFound:       int32(r.Found),
		TotalRequested:   int32(r.Requested),
		ServerInstance:   r.Instance,
		ProcessingTimeMs: r.Elapsed.Milliseconds(),
	}
	for i, a := range r.Assets {
		out.Assets[i] = toPB(a)
	}
	return out
}

func toPB(a Asset) *assetpb.Asset {
	var created int64
	if !a.CreatedAt.IsZero() {
		created = a.CreatedAt.UnixMilli()
	}
	return &assetpb.Asset{
		AssetId:          a.ID,
		Name:             a.Name,
		Description:      a.Description,
		Cusip:            a.Cusip,
		BloombergId:      a.BloombergID,
		Isin:             a.Isin,
		Sedol:            a.Sedol,
		CreatedTimestamp: created,
		MarketValue:      a.MarketValue,
		Currency:         a.Currency,
	}
}

func fromPB(p *assetpb.Asset) Asset {
	a := Asset{
		ID:          p.GetAssetId(),
		Name:        p.GetName(),
		Description: p.GetDescription(),
		Cusip:       p.GetCusip(),
		BloombergID: p.GetBloombergId(),
		Isin:        p.GetIsin(),
		Sedol:       p.GetSedol(),
		MarketValue: p.GetMarketValue(),
		Currency:    p.GetCurrency(),
	}
	if ms := p.GetCreatedTimestamp(); ms != 0 {
		a.CreatedAt = time.UnixMilli(ms).UTC()
	}
	return a
}

// FromResponse converts a wire response back into a PartialResponse.
func FromResponse(r *assetpb.AssetResponse) PartialResponse {
	out := PartialResponse{
		Assets:    make([]Asset, len(r.GetAssets())),
		Found:     int(r.GetTotalFound()),
		Requested: int(r.GetTotalRequested()),
		Instance:  r.GetServerInstance(),
		Elapsed:   time.Duration(r.GetProcessingTimeMs()) * time.Millisecond,
	}
	for i, a := range r.GetAssets() {
		out.Assets[i] = fromPB(a)
	}
	return out
}
