package service

import (
	"context"
	"testing"
	"time"

	"MatchSync/internal/model"
	"MatchSync/internal/ratelimit"

	"github.com/sirupsen/logrus"
)

type fakeOddsFeed struct {
	quotes []model.OddsQuote
	calls  int
}

func (f *fakeOddsFeed) Name() string { return "theoddsapi" }

func (f *fakeOddsFeed) FetchOdds(_ context.Context, _ model.Sport) ([]model.OddsQuote, error) {
	f.calls++
	return f.quotes, nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestTeamsAlike(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Liverpool", "Liverpool FC", true},
		{"liverpool fc", "LIVERPOOL", true},
		{"Spartak Moscow", "Spartak", true},
		{"Real Madrid", "Barcelona", false},
		{"", "Liverpool", false},
	}
	for _, tc := range cases {
		if got := teamsAlike(tc.a, tc.b); got != tc.want {
			t.Fatalf("teamsAlike(%q, %q) = %v, 期望 %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestAttachOddsRealQuote(t *testing.T) {
	draw := 3.1
	feed := &fakeOddsFeed{quotes: []model.OddsQuote{
		{Team1: "Liverpool", Team2: "Arsenal", OddsTeam1: 1.85, OddsTeam2: 3.6, OddsDraw: &draw},
	}}
	gate := ratelimit.NewSourceGate(nil, nil)
	e := NewOddsEnricher(feed, gate, testLogger())

	m := &model.MatchRecord{Sport: model.SportFootball, Team1: "Liverpool FC", Team2: "Arsenal FC"}
	e.AttachOdds(context.Background(), model.SportFootball, []*model.MatchRecord{m})

	if m.OddsSource != model.OddsSourceReal {
		t.Fatalf("odds_source = %s, 期望 real", m.OddsSource)
	}
	if m.OddsTeam1 != 1.85 || m.OddsTeam2 != 3.6 {
		t.Fatalf("真实赔率未正确挂载: %v / %v", m.OddsTeam1, m.OddsTeam2)
	}
	if m.OddsDraw == nil || *m.OddsDraw != 3.1 {
		t.Fatal("足球应携带平局赔率")
	}
}

func TestAttachOddsSyntheticFallback(t *testing.T) {
	// 无报价命中 → 合成赔率，范围[1.40,3.90]，保留2位小数
	e := NewOddsEnricher(nil, ratelimit.NewSourceGate(nil, nil), testLogger())
	for i := 0; i < 50; i++ {
		m := &model.MatchRecord{Sport: model.SportHockey, Team1: "A", Team2: "B"}
		e.AttachOdds(context.Background(), model.SportHockey, []*model.MatchRecord{m})
		if m.OddsSource != model.OddsSourceSynthetic {
			t.Fatalf("odds_source = %s, 期望 synthetic", m.OddsSource)
		}
		for _, v := range []float64{m.OddsTeam1, m.OddsTeam2} {
			if v < 1.40 || v > 3.90 {
				t.Fatalf("合成赔率越界: %v", v)
			}
		}
		if m.OddsDraw != nil {
			t.Fatal("冰球不应有平局赔率")
		}
	}
}

func TestAttachOddsSyntheticDrawForFootball(t *testing.T) {
	e := NewOddsEnricher(nil, ratelimit.NewSourceGate(nil, nil), testLogger())
	m := &model.MatchRecord{Sport: model.SportFootball, Team1: "A", Team2: "B"}
	e.AttachOdds(context.Background(), model.SportFootball, []*model.MatchRecord{m})
	if m.OddsDraw == nil {
		t.Fatal("足球合成赔率应包含平局")
	}
	if *m.OddsDraw < 2.50 || *m.OddsDraw > 4.20 {
		t.Fatalf("合成平局赔率越界: %v", *m.OddsDraw)
	}
}

func TestAttachOddsRespectsGate(t *testing.T) {
	// 赔率源处于限速间隔内：不外呼，直接合成
	feed := &fakeOddsFeed{quotes: []model.OddsQuote{{Team1: "A", Team2: "B", OddsTeam1: 2, OddsTeam2: 2}}}
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	gate := ratelimit.NewSourceGate(map[string]time.Duration{"theoddsapi": time.Hour}, func() time.Time { return now })
	gate.MarkCalled("theoddsapi")

	e := NewOddsEnricher(feed, gate, testLogger())
	m := &model.MatchRecord{Sport: model.SportEsports, Team1: "A", Team2: "B"}
	e.AttachOdds(context.Background(), model.SportEsports, []*model.MatchRecord{m})

	if feed.calls != 0 {
		t.Fatalf("限速期内不应外呼，calls = %d", feed.calls)
	}
	if m.OddsSource != model.OddsSourceSynthetic {
		t.Fatalf("限速回落应为合成赔率，得到 %s", m.OddsSource)
	}
}
