package timeutil

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
}

func newTestNormalizer() *Normalizer {
	return NewNormalizer(6*time.Hour, 48*time.Hour, fixedNow)
}

func TestNormalizeKeepsInWindowTime(t *testing.T) {
	n := newTestNormalizer()
	got := n.Normalize("2025-03-15T18:00:00Z")
	want := time.Date(2025, 3, 15, 21, 0, 0, 0, MSK())
	if !got.Equal(want) {
		t.Fatalf("归一结果 = %v, 期望 %v", got, want)
	}
	if got.Location().String() != "MSK" {
		t.Fatalf("目标时区 = %s, 期望 MSK", got.Location())
	}
}

func TestNormalizeFallsBackOutsideWindow(t *testing.T) {
	n := newTestNormalizer()
	cases := []struct {
		name string
		raw  string
	}{
		{"过去超6小时", "2025-03-14T00:00:00Z"},
		{"未来超48小时", "2025-03-20T00:00:00Z"},
		{"不可解析", "not-a-time"},
		{"空串", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.raw)
			// "像样"只承诺：今天的MSK日期 + 典型播出时段
			if got.Format("2006-01-02") != fixedNow().In(MSK()).Format("2006-01-02") {
				t.Fatalf("兜底时间应落在今日MSK日期，得到 %v", got)
			}
			hour := got.Hour()
			if hour < 16 || hour > 22 {
				t.Fatalf("兜底小时 = %d, 应在[16,22]", hour)
			}
		})
	}
}

func TestParseFlexibleFormats(t *testing.T) {
	n := newTestNormalizer()
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-03-15T18:00:00Z", time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)},
		{"1742061600", time.Unix(1742061600, 0)},
		{"2025-03-15 18:00:00", time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)},
		{"2025-03-15T18:00:00", time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, ok := n.ParseFlexible(tc.raw)
		if !ok {
			t.Fatalf("ParseFlexible(%q) 解析失败", tc.raw)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseFlexible(%q) = %v, 期望 %v", tc.raw, got, tc.want)
		}
	}
	if _, ok := n.ParseFlexible("garbage"); ok {
		t.Fatal("乱串不应解析成功")
	}
}

// 深夜UTC时间跨到MSK的第二天：match_date永远按开赛时间的MSK日历日算
func TestMatchDateCrossesMidnight(t *testing.T) {
	n := newTestNormalizer()
	got := n.Normalize("2025-03-15T22:30:00Z") // MSK 2025-03-16 01:30
	if d := n.MatchDate(got); d != "2025-03-16" {
		t.Fatalf("match_date = %s, 期望 2025-03-16", d)
	}
	if n.Today() != "2025-03-15" {
		t.Fatalf("Today = %s, 期望 2025-03-15", n.Today())
	}
}
