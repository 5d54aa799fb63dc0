// Package datagen produces synthetic instrument records for seeding a store.
package datagen

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/smartinsert/assetcache"
)

var (
	assetTypes = []string{"EQUITY", "BOND", "COMMODITY", "CURRENCY", "DERIVATIVE"}
	companies  = []string{
		"Apple Inc", "Microsoft Corp", "Amazon.com Inc", "Alphabet Inc", "Tesla Inc",
		"Meta Platforms Inc", "NVIDIA Corp", "Berkshire Hathaway", "Johnson & Johnson", "JPMorgan Chase",
		"Visa Inc", "Walmart Inc", "Procter & Gamble", "UnitedHealth Group", "Mastercard Inc",
		"Home Depot Inc", "Bank of America", "Pfizer Inc", "Coca-Cola Co", "Intel Corp",
	}
	currencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF"}
	exchanges  = []string{"US", "LN", "JP", "GR", "FP"}
	countries  = []string{"US", "GB", "DE", "FR", "JP", "CA"}
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ID formats the identifier of the i-th generated asset, counting from 1.
func ID(i int) string {
	return fmt.Sprintf("ASSET_%06d", i)
}

// IDs returns ID(1) through ID(n).
func IDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = ID(i + 1)
	}
	return ids
}

// Generator is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

// New returns a generator whose output depends only on seed and the clock.
func New(seed int64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rnd: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		now: now,
	}
}

// Generate returns count assets with ids ASSET_000001 upwards.
func (g *Generator) Generate(count int) []assetcache.Asset {
	return g.GenerateRange(1, count)
}

// GenerateRange returns the assets numbered from first, inclusive, count of them.
func (g *Generator) GenerateRange(first, count int) []assetcache.Asset {
	now := g.now()
	assets := make([]assetcache.Asset, 0, count)
	for i := first; i < first+count; i++ {
		assets = append(assets, assetcache.Asset{
			ID:          ID(i),
			Name:        pick(g.rnd, companies) + " " + pick(g.rnd, assetTypes),
			Description: "Financial instrument representing " + strings.ToLower(pick(g.rnd, assetTypes)) + " security",
			Cusip:       g.code(8) + g.digit(),
			BloombergID: g.ticker() + " " + pick(g.rnd, exchanges) + " Equity",
			Isin:        pick(g.rnd, countries) + g.code(9) + g.digit(),
			Sedol:       g.code(6) + g.digit(),
			CreatedAt:   now.Add(-time.Duration(g.rnd.IntN(365)) * 24 * time.Hour).Truncate(time.Millisecond),
			MarketValue: 1 + g.rnd.Float64()*9999,
			Currency:    pick(g.rnd, currencies),
		})
	}
	return assets
}

func pick(rnd *rand.Rand, s []string) string {
	return s[rnd.IntN(len(s))]
}

func (g *Generator) code(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[g.rnd.IntN(len(alphanumeric))]
	}
	return string(b)
}

func (g *Generator) digit() string {
	return string(rune('0' + g.rnd.IntN(10)))
}

func (g *Generator) ticker() string {
	b := make([]byte, 2+g.rnd.IntN(4))
	for i := range b {
		b[i] = byte('A' + g.rnd.IntN(26))
	}
	return string(b)
}
