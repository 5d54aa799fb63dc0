package assetcache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	rpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/smartinsert/assetcache/assetpb"
)

// startServer serves r on an in-memory listener and returns a client for it.
func startServer(t *testing.T, r *Resolver) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv, err := NewServer(r, ServerOptions{HealthInterval: time.Hour, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(lis) }()
	t.Cleanup(func() {
		srv.Stop()
		assert.NoError(t, <-served)
	})

	c, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func streamAll(t *testing.T, c *Client, ids []string, size int) []PartialResponse {
	t.Helper()
	var out []PartialResponse
	err := c.GetAssets(context.Background(), ids, size, func(r PartialResponse) error {
		out = append(out, r)
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestServerStreamsPartialResponses(t *testing.T) {
	r := newTestResolver(t, newFakeStore("A", "B"), newTestCache())
	c := startServer(t, r)

	responses := streamAll(t, c, []string{"A", "B", "C"}, 2)
	require.Len(t, responses, 2)
	var requested, found int
	for _, resp := range responses {
		requested += resp.Requested
		found += resp.Found
		assert.Equal(t, "test-0", resp.Instance)
	}
	assert.Equal(t, 3, requested)
	assert.Equal(t, 2, found)

	got := make(map[string]Asset)
	for _, resp := range responses {
		for _, a := range resp.Assets {
			got[a.ID] = a
		}
	}
	assert.Equal(t, asset("A"), got["A"], "every field survives the wire")
}

func TestServerEmptyRequest(t *testing.T) {
	c := startServer(t, newTestResolver(t, newFakeStore(), newTestCache()))

	responses := streamAll(t, c, nil, 0)
	require.Len(t, responses, 1)
	assert.Zero(t, responses[0].Found)
	assert.Zero(t, responses[0].Requested)
	assert.Equal(t, "test-0", responses[0].Instance)
}

func TestServerInternalFailure(t *testing.T) {
	store := newFakeStore()
	store.onMany = func([]string) { panic("boom") }
	c := startServer(t, newTestResolver(t, store, newTestCache()))

	err := c.GetAssets(context.Background(), []string{"A"}, 1, func(PartialResponse) error { return nil })
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestServerInternalEndpoint(t *testing.T) {
	peer := newFakePeer("P")
	c := startServer(t, newTestResolver(t, newFakeStore("S"), newTestCache(), peer))

	assets, err := c.FetchInternal(context.Background(), []string{"P", "S"})
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, idsOf(assets))
	assert.Zero(t, peer.calls())
}

func TestServerHealth(t *testing.T) {
	store := newFakeStore()
	c := startServer(t, newTestResolver(t, store, newTestCache()))

	ok, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestServerUnhealthyStore(t *testing.T) {
	store := newFakeStore()
	store.down = true
	c := startServer(t, newTestResolver(t, store, newTestCache()))

	ok, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPeerFanoutOverGRPC(t *testing.T) {
	// B owns X in its store, A does not.
	b := startServer(t, newTestResolver(t, newFakeStore("X"), newTestCache()))

	storeA := newFakeStore("Y")
	cacheA := newTestCache()
	logger := zaptest.NewLogger(t)
	ra, err := NewResolver(Options{
		Instance: "a",
		Cache:    cacheA,
		Store:    storeA,
		Peers:    NewPeerFanout([]Peer{{Addr: "b", Fetcher: b}}, cacheA, FanoutOptions{Logger: logger}),
		Logger:   logger,
	})
	require.NoError(t, err)
	t.Cleanup(ra.Close)
	a := startServer(t, ra)

	responses := streamAll(t, a, []string{"X", "Y", "Z"}, 10)
	require.Len(t, responses, 1)
	assert.Equal(t, map[string]bool{"X": true, "Y": true}, foundIDs(responses))

	_, ok := cacheA.Get("X")
	assert.True(t, ok, "peer result cached locally")
}

func TestServerReflectionDescribesService(t *testing.T) {
	c := startServer(t, newTestResolver(t, newFakeStore(), newTestCache()))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := rpb.NewServerReflectionClient(c.conn).ServerReflectionInfo(ctx)
	require.NoError(t, err)
	require.NoError(t, stream.Send(&rpb.ServerReflectionRequest{
		MessageRequest: &rpb.ServerReflectionRequest_FileContainingSymbol{FileContainingSymbol: assetpb.ServiceName},
	}))
	resp, err := stream.Recv()
	require.NoError(t, err)
	require.Nil(t, resp.GetErrorResponse(), "reflection error: %v", resp.GetErrorResponse())

	files := resp.GetFileDescriptorResponse().GetFileDescriptorProto()
	require.NotEmpty(t, files)
	fd := new(descriptorpb.FileDescriptorProto)
	require.NoError(t, proto.Unmarshal(files[0], fd))
	assert.Equal(t, "assetpb/asset.proto", fd.GetName())
	require.Len(t, fd.GetService(), 1)
	assert.Equal(t, "AssetService", fd.GetService()[0].GetName())

	require.NoError(t, stream.Send(&rpb.ServerReflectionRequest{
		MessageRequest: &rpb.ServerReflectionRequest_ListServices{},
	}))
	resp, err = stream.Recv()
	require.NoError(t, err)
	var names []string
	for _, svc := range resp.GetListServicesResponse().GetService() {
		names = append(names, svc.GetName())
	}
	assert.Contains(t, names, assetpb.ServiceName)
	require.NoError(t, stream.CloseSend())
}

func TestServerStartTwice(t *testing.T) {
	srv, err := NewServer(newTestResolver(t, newFakeStore(), newTestCache()), ServerOptions{})
	require.NoError(t, err)
	lis := bufconn.Listen(1024)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(lis) }()

	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		return srv.status
	}, time.Second, time.Millisecond)
	assert.Error(t, srv.Serve(bufconn.Listen(1024)))

	srv.Stop()
	assert.NoError(t, <-done)
	srv.Stop()
}

func TestNewServerNeedsResolver(t *testing.T) {
	_, err := NewServer(nil, ServerOptions{})
	assert.Error(t, err)
}
