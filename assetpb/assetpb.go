// Package assetpb holds the gRPC contract of assetd, generated from asset.proto.
package assetpb

//go:generate protoc --proto_path=.. --go_out=.. --go_opt=paths=source_relative --go-grpc_out=.. --go-grpc_opt=paths=source_relative assetpb/asset.proto

// ServiceName is the fully qualified AssetService name, also used as the
// health-check service key.
const ServiceName = "assetcache.v1.AssetService"
