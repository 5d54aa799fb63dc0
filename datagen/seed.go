package datagen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/smartinsert/assetcache"
)

const DefaultSeedChunk = 5000

// Writer is the part of the store client seeding needs.
type Writer interface {
	PutMany(ctx context.Context, assets []assetcache.Asset) error
}

// Seed writes count generated assets to w in chunks. A failed write aborts
// the seeding and is returned.
func Seed(ctx context.Context, w Writer, g *Generator, count, chunk int, logger *zap.Logger) error {
	if chunk < 1 {
		chunk = DefaultSeedChunk
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	for first := 1; first <= count; first += chunk {
		n := min(chunk, count-first+1)
		if err := w.PutMany(ctx, g.GenerateRange(first, n)); err != nil {
			return fmt.Errorf("seeding assets %s..%s: %w", ID(first), ID(first+n-1), err)
		}
		logger.Debug("seeded chunk", zap.String("from", ID(first)), zap.Int("count", n))
	}
	logger.Info("store seeded", zap.Int("count", count))
	return nil
}

// ScrambledIDs returns ID(1)..ID(count), each exactly once, in a spread out
// order, the access pattern of the benchmark client.
func ScrambledIDs(count int) []string {
	stride := scrambleStride(count)
	ids := make([]string, count)
	for i := range ids {
		ids[i] = ID(((i+1)*stride)%count + 1)
	}
	return ids
}

// scrambleStride is the first stride from 33 up that shares no factor with
// count, so stepping by it visits every residue.
func scrambleStride(count int) int {
	stride := 33
	for count > 1 && gcd(stride, count) != 1 {
		stride++
	}
	return stride
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
