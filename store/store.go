// Package store is the durable key/value tier behind the asset cache.
//
// Every backend uses the same layout: a record lives under "asset:<id>" as a
// JSON document and its id is a member of "assets:all", which is what the
// partition initializer enumerates.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smartinsert/assetcache"
)

const (
	KeyPrefix  = "asset:"
	MembersKey = "assets:all"
)

var ErrNotFound = errors.New("asset not found")

// Record is an encoded asset ready for a backend.
type Record struct {
	ID   string
	Data []byte
}

// Backend is the raw storage contract. Unlike Client, it surfaces every failure.
type Backend interface {
	// Get returns ErrNotFound when id is absent.
	Get(ctx context.Context, id string) ([]byte, error)
	// GetMany returns the present ids only.
	GetMany(ctx context.Context, ids []string) (map[string][]byte, error)
	PutMany(ctx context.Context, records []Record) error
	Count(ctx context.Context) (int64, error)
	Members(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

func RecordKey(id string) string {
	return KeyPrefix + id
}

// Encode serializes a in the stored JSON layout.
func Encode(a assetcache.Asset) (Record, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return Record{}, fmt.Errorf("encoding asset %s: %w", a.ID, err)
	}
	return Record{ID: a.ID, Data: data}, nil
}

func Decode(data []byte) (assetcache.Asset, error) {
	var a assetcache.Asset
	if err := json.Unmarshal(data, &a); err != nil {
		return assetcache.Asset{}, fmt.Errorf("decoding asset: %w", err)
	}
	return a, nil
}

func chunks[T any](s []T, size int) [][]T {
	var out [][]T
	for size < len(s) {
		s, out = s[size:], append(out, s[:size:size])
	}
	if len(s) > 0 {
		out = append(out, s)
	}
	return out
}
