// Package consistenthash maps keys onto a ring of nodes. assetctl uses it to
// send batches that start with the same id to the same instance.
package consistenthash

import (
	"hash/crc32"
	"sort"
	"strconv"
)

// HashFunc hashes ring positions. The default is crc32.ChecksumIEEE.
type HashFunc func(data []byte) uint32

// Ring is not safe for concurrent modification.
type Ring struct {
	hash     HashFunc
	replicas int
	ring     []int          // sorted virtual node hashes
	nodes    map[int]string // virtual node hash -> node
}

func New(replicas int, fn HashFunc) *Ring {
	if replicas < 1 {
		replicas = 1
	}
	r := &Ring{
		hash:     fn,
		replicas: replicas,
		nodes:    make(map[int]string),
	}
	if r.hash == nil {
		r.hash = crc32.ChecksumIEEE
	}
	return r
}

// Add places replicas virtual nodes on the ring for each node, named "<i><node>".
func (r *Ring) Add(nodes ...string) {
	for _, node := range nodes {
		for i := 0; i < r.replicas; i++ {
			h := int(r.hash([]byte(strconv.Itoa(i) + node)))
			r.ring = append(r.ring, h)
			r.nodes[h] = node
		}
	}
	sort.Ints(r.ring)
}

// Get returns the node owning key: the first virtual node clockwise from its hash.
func (r *Ring) Get(key string) string {
	if len(r.ring) == 0 {
		return ""
	}
	h := int(r.hash([]byte(key)))
	idx := sort.Search(len(r.ring), func(i int) bool {
		return r.ring[i] >= h
	})
	return r.nodes[r.ring[idx%len(r.ring)]]
}

func (r *Ring) Len() int {
	return len(r.ring) / r.replicas
}
