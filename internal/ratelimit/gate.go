package ratelimit

import (
	"sync"
	"time"
)

// SourceGate 按数据源的最小调用间隔闸门。
// 没有排队：被拒的调用方直接跳过该源，等下一轮管线再试（尽力而为的削峰，不是背压）。
// 各项目管线并发访问同一闸门（apisports 被足球和冰球共用），lastCall 需要加锁。
type SourceGate struct {
	mu        sync.Mutex
	intervals map[string]time.Duration
	lastCall  map[string]time.Time
	now       func() time.Time
}

// NewSourceGate 创建闸门。now 可注入用于测试，传nil用 time.Now。
func NewSourceGate(intervals map[string]time.Duration, now func() time.Time) *SourceGate {
	if now == nil {
		now = time.Now
	}
	return &SourceGate{
		intervals: intervals,
		lastCall:  make(map[string]time.Time),
		now:       now,
	}
}

// CanCall 距上次调用是否已超过该源的最小间隔。未配置间隔的源不受限。
func (g *SourceGate) CanCall(source string) bool {
	interval, ok := g.intervals[source]
	if !ok || interval <= 0 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	last, called := g.lastCall[source]
	if !called {
		return true
	}
	return g.now().Sub(last) >= interval
}

// MarkCalled 记录一次调用时刻（CanCall 本身无副作用）
func (g *SourceGate) MarkCalled(source string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastCall[source] = g.now()
}
