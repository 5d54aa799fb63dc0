package consistenthash

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing(t *testing.T) {
	// keys hash to their numeric value
	r := New(3, func(key []byte) uint32 {
		i, _ := strconv.Atoi(string(key))
		return uint32(i)
	})
	assert.Equal(t, "", r.Get("1"))

	// virtual nodes 2, 4, 6, 12, 14, 16, 22, 24, 26
	r.Add("6", "4", "2")
	assert.Equal(t, 3, r.Len())

	cases := map[string]string{"2": "2", "11": "2", "23": "4", "27": "2"}
	for k, want := range cases {
		assert.Equal(t, want, r.Get(k), "key %s", k)
	}

	// 8, 18, 28
	r.Add("8")
	cases["27"] = "8"
	for k, want := range cases {
		assert.Equal(t, want, r.Get(k), "key %s", k)
	}
}

func TestRingStable(t *testing.T) {
	a, b := New(50, nil), New(50, nil)
	a.Add("10.0.0.1:9090", "10.0.0.2:9090", "10.0.0.3:9090")
	b.Add("10.0.0.3:9090", "10.0.0.1:9090", "10.0.0.2:9090")
	for _, key := range []string{"ASSET_000001", "ASSET_004242", "ASSET_099999"} {
		assert.Equal(t, a.Get(key), b.Get(key))
	}
}
