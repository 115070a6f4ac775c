package service

import (
	"sync"
	"time"

	"MatchSync/internal/model"
)

// matchCache 进程内定长TTL缓存，键为"作用域_日历日"（作用域=all或具体项目）。
// 进程重启即失，无跨实例一致性。API请求与定时任务并发读写，加读写锁。
type matchCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	matches   map[model.Sport][]*model.MatchRecord
	expiresAt time.Time
}

func newMatchCache(ttl time.Duration, now func() time.Time) *matchCache {
	if now == nil {
		now = time.Now
	}
	return &matchCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// get 命中且未过期才返回
func (c *matchCache) get(key string) (map[model.Sport][]*model.MatchRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.matches, true
}

func (c *matchCache) set(key string, matches map[model.Sport][]*model.MatchRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		matches:   matches,
		expiresAt: c.now().Add(c.ttl),
	}
}

// isValid 仅做有效性检查，不取值
func (c *matchCache) isValid(key string) bool {
	_, ok := c.get(key)
	return ok
}

// invalidate 强制刷新先清键再重算
func (c *matchCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
