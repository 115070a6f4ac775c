package timeutil

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// 目标民用时区：固定 UTC+3（MSK），不做夏令时换算
const mskOffsetHours = 3

// MSK 返回固定偏移的目标时区
func MSK() *time.Location {
	return time.FixedZone("MSK", mskOffsetHours*3600)
}

// 无可信源时间时的兜底播出时段（MSK整点，典型晚场）
var plausibleHours = []int{16, 17, 18, 19, 20, 21, 22}
var plausibleMinutes = []int{0, 15, 30, 45}

// Normalizer 时间归一器：把各源任意时间戳归一为固定偏移的民用时间，
// 解析失败或落在合理窗口外时丢弃原值，改用兜底的"像样时间"。
// 这是启发式，不是正确性保证——"像样"只承诺落在窗口内。
type Normalizer struct {
	loc          *time.Location
	pastWindow   time.Duration
	futureWindow time.Duration
	now          func() time.Time
}

// NewNormalizer 创建归一器。now 可注入用于测试，传nil用 time.Now。
func NewNormalizer(pastWindow, futureWindow time.Duration, now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{
		loc:          MSK(),
		pastWindow:   pastWindow,
		futureWindow: futureWindow,
		now:          now,
	}
}

// Location 目标时区
func (n *Normalizer) Location() *time.Location { return n.loc }

// Normalize 解析原始时间串并归一到MSK；不可解析或出窗即回落 PlausibleTime。
func (n *Normalizer) Normalize(raw string) time.Time {
	t, ok := n.ParseFlexible(raw)
	if !ok {
		return n.PlausibleTime()
	}
	now := n.now()
	if t.Before(now.Add(-n.pastWindow)) || t.After(now.Add(n.futureWindow)) {
		return n.PlausibleTime()
	}
	return t.In(n.loc)
}

// ParseFlexible 尽力解析各源的时间格式：RFC3339、unix秒、"2006-01-02 15:04:05"。
func (n *Normalizer) ParseFlexible(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if sec, err := strconv.ParseInt(raw, 10, 64); err == nil && sec > 1e9 && sec < 1e11 {
		return time.Unix(sec, 0), true
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", raw, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// PlausibleTime 生成今日MSK日期上的一个典型播出时刻（伪随机时段，全局rand并发安全）
func (n *Normalizer) PlausibleTime() time.Time {
	now := n.now().In(n.loc)
	hour := plausibleHours[rand.Intn(len(plausibleHours))]
	minute := plausibleMinutes[rand.Intn(len(plausibleMinutes))]
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, n.loc)
}

// MatchDate 返回该时刻对应的MSK日历日（YYYY-MM-DD）——永远按开赛时间算，不按抓取时间
func (n *Normalizer) MatchDate(t time.Time) string {
	return t.In(n.loc).Format("2006-01-02")
}

// Today 当前MSK日历日
func (n *Normalizer) Today() string {
	return n.now().In(n.loc).Format("2006-01-02")
}
