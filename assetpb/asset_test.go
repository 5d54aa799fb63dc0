package assetpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

func TestResponseRoundTrip(t *testing.T) {
	in := &AssetResponse{
		Assets: []*Asset{
			{
				AssetId:          "ASSET_000001",
				Name:             "Apple Inc EQUITY",
				Description:      "Financial instrument representing equity security",
				Cusip:            "037833100",
				BloombergId:      "AAPL US Equity",
				Isin:             "US0378331005",
				Sedol:            "2046251",
				CreatedTimestamp: 1700000000123,
				MarketValue:      187.44,
				Currency:         "USD",
			},
			{AssetId: "ASSET_000002"},
		},
		TotalFound:       2,
		TotalRequested:   3,
		ServerInstance:   "asset-0:9090",
		ProcessingTimeMs: 12,
	}

	data, err := proto.Marshal(in)
	require.NoError(t, err)

	out := new(AssetResponse)
	require.NoError(t, proto.Unmarshal(data, out))
	assert.True(t, proto.Equal(in, out), "got %v", out)
}

func TestRequestNegativeBatchSize(t *testing.T) {
	in := &AssetRequest{AssetIds: []string{"a", "", "c"}, BatchSize: -1}
	data, err := proto.Marshal(in)
	require.NoError(t, err)

	out := new(AssetRequest)
	require.NoError(t, proto.Unmarshal(data, out))
	assert.Equal(t, []string{"a", "", "c"}, out.GetAssetIds())
	assert.EqualValues(t, -1, out.GetBatchSize())
}

func TestInvalidUTF8IsRejected(t *testing.T) {
	_, err := proto.Marshal(&AssetRequest{AssetIds: []string{"\xff"}})
	assert.Error(t, err)
}

func TestNilGetters(t *testing.T) {
	var resp *AssetResponse
	assert.Nil(t, resp.GetAssets())
	assert.Zero(t, resp.GetTotalFound())
	var a *Asset
	assert.Empty(t, a.GetAssetId())
}

func TestDescriptorIsRegistered(t *testing.T) {
	d, err := protoregistry.GlobalFiles.FindDescriptorByName(ServiceName)
	require.NoError(t, err)
	svc, ok := d.(protoreflect.ServiceDescriptor)
	require.True(t, ok)
	assert.Equal(t, "assetpb/asset.proto", svc.ParentFile().Path())

	stream := svc.Methods().ByName("GetAssets")
	require.NotNil(t, stream)
	assert.True(t, stream.IsStreamingServer())
	assert.False(t, stream.IsStreamingClient())
	assert.Equal(t, protoreflect.FullName("assetcache.v1.AssetRequest"), stream.Input().FullName())
	assert.Equal(t, protoreflect.FullName("assetcache.v1.AssetResponse"), stream.Output().FullName())

	internal := svc.Methods().ByName("GetAssetsInternal")
	require.NotNil(t, internal)
	assert.False(t, internal.IsStreamingServer())

	assets := (&AssetResponse{}).ProtoReflect().Descriptor().Fields().ByName("assets")
	require.NotNil(t, assets)
	assert.Equal(t, protoreflect.FullName("assetcache.v1.Asset"), assets.Message().FullName())
	assert.Equal(t, ServiceName, AssetService_ServiceDesc.ServiceName)
}
