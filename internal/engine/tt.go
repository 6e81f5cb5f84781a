package engine

import "xiangqi/internal/xiangqi"

const evalCacheCap = 1 << 20

// evalCache 只在一次搜索内有效：搜索视角固定，键用局面的 Zobrist 哈希
type evalCache struct {
	m    map[uint64]float64
	hits int64
}

func newEvalCache() *evalCache {
	return &evalCache{m: make(map[uint64]float64, 1<<12)}
}

func (c *evalCache) get(pos *xiangqi.Position) (float64, bool) {
	v, ok := c.m[pos.Hash()]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *evalCache) store(pos *xiangqi.Position, score float64) {
	if len(c.m) >= evalCacheCap {
		c.m = make(map[uint64]float64, 1<<12)
	}
	c.m[pos.Hash()] = score
}
