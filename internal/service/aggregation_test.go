package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/ratelimit"
	"MatchSync/internal/timeutil"
)

// ---------- 测试替身 ----------

type fakeSource struct {
	name   string
	sports []model.Sport
	result func(sport model.Sport) model.FetchResult
	calls  int
}

func (f *fakeSource) Name() string          { return f.name }
func (f *fakeSource) Sports() []model.Sport { return f.sports }
func (f *fakeSource) FetchMatches(_ context.Context, sport model.Sport) model.FetchResult {
	f.calls++
	return f.result(sport)
}

type fakeProvider struct {
	bySport map[model.Sport][]interfaces.MatchSource
}

func (p *fakeProvider) SourcesFor(sport model.Sport) []interfaces.MatchSource {
	return p.bySport[sport]
}

type fakeMatchRepo struct {
	upserted []*model.MatchRecord
	failNext error
}

func (r *fakeMatchRepo) UpsertMatches(_ context.Context, matches []*model.MatchRecord) error {
	if r.failNext != nil {
		return r.failNext
	}
	r.upserted = append(r.upserted, matches...)
	return nil
}
func (r *fakeMatchRepo) ListByDate(context.Context, string) ([]*model.MatchRecord, error) {
	return nil, nil
}
func (r *fakeMatchRepo) ListBySportAndDate(context.Context, model.Sport, string) ([]*model.MatchRecord, error) {
	return nil, nil
}
func (r *fakeMatchRepo) DeleteByDate(context.Context, string) (int64, error)    { return 0, nil }
func (r *fakeMatchRepo) DeleteOlderThan(context.Context, string) (int64, error) { return 0, nil }
func (r *fakeMatchRepo) CountByDate(context.Context, string) (int64, error)     { return 0, nil }

type fakeAnalysisRepo struct{}

func (fakeAnalysisRepo) SeedIfEmpty(context.Context) error { return nil }
func (fakeAnalysisRepo) RandomBySport(context.Context, model.Sport) (string, error) {
	return "базовый разбор матча", nil
}

type fakeLogos struct{}

func (fakeLogos) LogoURL(team string, _ model.Sport) string { return "https://logo.test/" + team }

// ---------- 组装 ----------

func testNow() time.Time {
	return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
}

func rawsFor(source string, sport model.Sport, n int) []model.RawMatch {
	teams := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "India", "Juliett"}
	var out []model.RawMatch
	for i := 0; i < n; i++ {
		out = append(out, model.RawMatch{
			Source:  source,
			Sport:   sport,
			Team1:   teams[(2*i)%len(teams)],
			Team2:   teams[(2*i+1)%len(teams)],
			RawTime: "2025-03-15T18:00:00Z",
		})
	}
	return out
}

func okSource(name string, sport model.Sport, n int) *fakeSource {
	return &fakeSource{
		name:   name,
		sports: []model.Sport{sport},
		result: func(s model.Sport) model.FetchResult { return model.OKResult(rawsFor(name, s, n)) },
	}
}

func newTestAggregator(provider SourceProvider, repo interfaces.MatchRepository) *MatchAggregator {
	return NewMatchAggregator(AggregatorParams{
		Sources:     provider,
		Gate:        ratelimit.NewSourceGate(nil, testNow),
		Normalizer:  timeutil.NewNormalizer(6*time.Hour, 48*time.Hour, testNow),
		OddsFeed:    nil,
		Composer:    NewComposer(fakeAnalysisRepo{}, testLogger()),
		Logos:       fakeLogos{},
		MatchRepo:   repo,
		CacheTTL:    30 * time.Minute,
		MaxPerSport: 2,
		Now:         testNow,
		Logger:      testLogger(),
	})
}

func fullProvider(n int) (*fakeProvider, map[model.Sport]*fakeSource) {
	sources := map[model.Sport]*fakeSource{
		model.SportFootball: okSource("footballdata", model.SportFootball, n),
		model.SportBaseball: okSource("mlbstats", model.SportBaseball, n),
		model.SportHockey:   okSource("nhlweb", model.SportHockey, n),
		model.SportEsports:  okSource("pandascore", model.SportEsports, n),
	}
	bySport := make(map[model.Sport][]interfaces.MatchSource)
	for sport, src := range sources {
		bySport[sport] = []interfaces.MatchSource{src}
	}
	return &fakeProvider{bySport: bySport}, sources
}

// ---------- 用例 ----------

func TestPerSportCap(t *testing.T) {
	provider, _ := fullProvider(5) // 每源报5场，超上限
	agg := newTestAggregator(provider, &fakeMatchRepo{})

	result, err := agg.TodayMatches(context.Background())
	if err != nil {
		t.Fatalf("TodayMatches: %v", err)
	}
	for sport, matches := range result {
		if len(matches) > 2 {
			t.Fatalf("%s 比赛数 = %d, 超过每日上限2", sport, len(matches))
		}
	}
}

func TestMatchDateMatchesMatchTime(t *testing.T) {
	// 深夜UTC开赛跨到MSK次日：match_date必须跟开赛时间走，不跟抓取日走
	src := &fakeSource{
		name:   "footballdata",
		sports: []model.Sport{model.SportFootball},
		result: func(model.Sport) model.FetchResult {
			return model.OKResult([]model.RawMatch{{
				Source: "footballdata", Sport: model.SportFootball,
				Team1: "A", Team2: "B", RawTime: "2025-03-15T22:30:00Z",
			}})
		},
	}
	provider := &fakeProvider{bySport: map[model.Sport][]interfaces.MatchSource{
		model.SportFootball: {src},
	}}
	agg := newTestAggregator(provider, &fakeMatchRepo{})

	result, _ := agg.TodayMatches(context.Background())
	for _, matches := range result {
		for _, m := range matches {
			want := m.MatchTime.In(timeutil.MSK()).Format("2006-01-02")
			if m.MatchDate != want {
				t.Fatalf("match_date = %s, 开赛时间MSK日历日 = %s", m.MatchDate, want)
			}
		}
	}
	if m := result[model.SportFootball][0]; m.MatchDate != "2025-03-16" {
		t.Fatalf("跨午夜场次 match_date = %s, 期望 2025-03-16", m.MatchDate)
	}
}

func TestCacheIdempotenceWithinTTL(t *testing.T) {
	provider, sources := fullProvider(2)
	agg := newTestAggregator(provider, &fakeMatchRepo{})

	first, err := agg.TodayMatches(context.Background())
	if err != nil {
		t.Fatalf("TodayMatches: %v", err)
	}
	callsAfterFirst := make(map[model.Sport]int)
	for sport, src := range sources {
		callsAfterFirst[sport] = src.calls
	}

	second, err := agg.TodayMatches(context.Background())
	if err != nil {
		t.Fatalf("TodayMatches(第二次): %v", err)
	}

	// TTL内第二次调用：零外呼 + 结果逐条一致
	for sport, src := range sources {
		if src.calls != callsAfterFirst[sport] {
			t.Fatalf("%s 在TTL内产生了额外外呼", sport)
		}
	}
	for sport := range first {
		if len(first[sport]) != len(second[sport]) {
			t.Fatalf("%s 两次结果长度不一致", sport)
		}
		for i := range first[sport] {
			if first[sport][i].MatchKey != second[sport][i].MatchKey {
				t.Fatalf("%s 两次结果记录不一致", sport)
			}
		}
	}
}

func TestForceRefreshBypassesCache(t *testing.T) {
	provider, sources := fullProvider(2)
	agg := newTestAggregator(provider, &fakeMatchRepo{})

	if _, err := agg.TodayMatches(context.Background()); err != nil {
		t.Fatalf("TodayMatches: %v", err)
	}
	if !agg.CacheValid() {
		t.Fatal("首轮后缓存应有效")
	}

	// 缓存有效的前提下强刷：必须先清键再重算，适配器要有新外呼
	if _, err := agg.ForceRefresh(context.Background()); err != nil {
		t.Fatalf("ForceRefresh: %v", err)
	}
	for sport, src := range sources {
		if src.calls != 2 {
			t.Fatalf("%s 强刷后外呼次数 = %d, 期望 2", sport, src.calls)
		}
	}
}

func TestSportOutageDoesNotPoisonOthers(t *testing.T) {
	provider, sources := fullProvider(2)
	// 冰球全部源宕机
	sources[model.SportHockey].result = func(model.Sport) model.FetchResult {
		return model.FailedResult(errors.New("upstream down"))
	}
	agg := newTestAggregator(provider, &fakeMatchRepo{})

	result, err := agg.TodayMatches(context.Background())
	if err != nil {
		t.Fatalf("TodayMatches: %v", err)
	}
	if len(result[model.SportHockey]) != 0 {
		t.Fatal("宕机项目应如实返回空列表，不造假比赛")
	}
	for _, sport := range []model.Sport{model.SportFootball, model.SportBaseball, model.SportEsports} {
		if len(result[sport]) == 0 {
			t.Fatalf("%s 不应被冰球宕机波及", sport)
		}
	}
}

func TestAdapterFallbackOrder(t *testing.T) {
	primary := &fakeSource{
		name:   "footballdata",
		sports: []model.Sport{model.SportFootball},
		result: func(model.Sport) model.FetchResult { return model.FetchResult{Status: model.FetchEmpty} },
	}
	secondary := okSource("apisports", model.SportFootball, 2)
	provider := &fakeProvider{bySport: map[model.Sport][]interfaces.MatchSource{
		model.SportFootball: {primary, secondary},
	}}
	agg := newTestAggregator(provider, &fakeMatchRepo{})

	result, _ := agg.TodayMatches(context.Background())
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("应按优先级先主后备: primary=%d secondary=%d", primary.calls, secondary.calls)
	}
	for _, m := range result[model.SportFootball] {
		if m.Source != "apisports" {
			t.Fatalf("记录来源 = %s, 期望备用源 apisports", m.Source)
		}
	}
}

func TestCapStopsBeforeLowerPrioritySources(t *testing.T) {
	primary := okSource("footballdata", model.SportFootball, 2)
	secondary := okSource("apisports", model.SportFootball, 2)
	provider := &fakeProvider{bySport: map[model.Sport][]interfaces.MatchSource{
		model.SportFootball: {primary, secondary},
	}}
	agg := newTestAggregator(provider, &fakeMatchRepo{})

	if _, err := agg.TodayMatches(context.Background()); err != nil {
		t.Fatalf("TodayMatches: %v", err)
	}
	if secondary.calls != 0 {
		t.Fatal("主源已凑够上限，备用源不应被调用")
	}
}

func TestPersistFailureStillReturnsData(t *testing.T) {
	provider, _ := fullProvider(2)
	repo := &fakeMatchRepo{failNext: errors.New("db down")}
	agg := newTestAggregator(provider, repo)

	result, err := agg.TodayMatches(context.Background())
	if err == nil {
		t.Fatal("落库失败应向上返回错误")
	}
	if len(result) == 0 {
		t.Fatal("落库失败时仍应返回已算出的数据")
	}
}

func TestRealismScorePure(t *testing.T) {
	for i := 0; i < 5; i++ {
		if RealismScore("footballdata") != 0.95 {
			t.Fatal("同一来源必须得到同一分值")
		}
	}
	unknown := RealismScore("some-new-source")
	for _, known := range []string{"footballdata", "mlbstats", "nhlweb", "apisports", "pandascore"} {
		if unknown >= RealismScore(known) {
			t.Fatalf("未知来源分值 %v 应低于已知来源 %s=%v", unknown, known, RealismScore(known))
		}
	}
}

func TestRecordEnrichment(t *testing.T) {
	provider, _ := fullProvider(1)
	agg := newTestAggregator(provider, &fakeMatchRepo{})

	result, _ := agg.TodayMatches(context.Background())
	for sport, matches := range result {
		for _, m := range matches {
			if m.MatchKey == "" {
				t.Fatal("记录缺少幂等键")
			}
			if m.LogoTeam1 == "" || m.LogoTeam2 == "" {
				t.Fatal("徽标解析永远要给出URL")
			}
			if m.Analysis == "" || m.Prediction == "" {
				t.Fatalf("%s 记录缺少文案/预测", sport)
			}
			if m.OddsTeam1 <= 0 || m.OddsTeam2 <= 0 {
				t.Fatal("赔率未挂载")
			}
			if m.RealismScore != RealismScore(m.Source) {
				t.Fatal("realism_score 必须等于来源查表值")
			}
		}
	}
}
