package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/ratelimit"
	"MatchSync/internal/timeutil"

	"github.com/sirupsen/logrus"
)

// realismScores 来源→可信度查表（纯映射，逐条记录不允许手改）。
// 未知来源给固定默认值，低于任何已知真实API。
var realismScores = map[string]float64{
	"footballdata": 0.95,
	"mlbstats":     0.95,
	"nhlweb":       0.95,
	"apisports":    0.90,
	"pandascore":   0.85,
}

const realismDefault = 0.40

// RealismScore 来源可信度：同一来源串永远得到同一分值
func RealismScore(source string) float64 {
	if score, ok := realismScores[source]; ok {
		return score
	}
	return realismDefault
}

// SourceProvider 按项目提供有序适配器列表（生产实现为 adapter.SourceRegistry）
type SourceProvider interface {
	SourcesFor(sport model.Sport) []interfaces.MatchSource
}

// MatchAggregator 聚合管线核心：四个项目并发跑各自的"逐源尝试→限速闸门→时间归一→
// 赔率富化→文案组稿"管线，合并结果后缓存并落库。
// 缓存与限速时间表都是本实例显式持有的状态，每进程构造一次，调度器与API层共用同一实例。
type MatchAggregator struct {
	sources     SourceProvider
	gate        *ratelimit.SourceGate
	normalizer  *timeutil.Normalizer
	cache       *matchCache
	enricher    *OddsEnricher
	composer    *Composer
	logos       interfaces.LogoResolver
	matchRepo   interfaces.MatchRepository
	maxPerSport int
	logger      *logrus.Logger
}

// AggregatorParams 构造参数（字段较多，按名传递）
type AggregatorParams struct {
	Sources     SourceProvider
	Gate        *ratelimit.SourceGate
	Normalizer  *timeutil.Normalizer
	OddsFeed    interfaces.OddsFeed
	Composer    *Composer
	Logos       interfaces.LogoResolver
	MatchRepo   interfaces.MatchRepository
	CacheTTL    time.Duration
	MaxPerSport int
	Now         func() time.Time // 测试注入，传nil用 time.Now
	Logger      *logrus.Logger
}

func NewMatchAggregator(p AggregatorParams) *MatchAggregator {
	return &MatchAggregator{
		sources:     p.Sources,
		gate:        p.Gate,
		normalizer:  p.Normalizer,
		cache:       newMatchCache(p.CacheTTL, p.Now),
		enricher:    NewOddsEnricher(p.OddsFeed, p.Gate, p.Logger),
		composer:    p.Composer,
		logos:       p.Logos,
		matchRepo:   p.MatchRepo,
		maxPerSport: p.MaxPerSport,
		logger:      p.Logger,
	}
}

// TodayMatches 今日全项目比赛（缓存有效期内直接回缓存，不再外呼）。
// 返回的error仅来自落库失败：调用方（API层）仍可使用返回的数据。
func (a *MatchAggregator) TodayMatches(ctx context.Context) (map[model.Sport][]*model.MatchRecord, error) {
	key := a.cacheKey("all")
	if cached, ok := a.cache.get(key); ok {
		return cached, nil
	}
	result := a.runPipeline(ctx)
	a.cache.set(key, result)

	if err := a.persist(ctx, result); err != nil {
		return result, fmt.Errorf("比赛落库失败: %w", err)
	}
	return result, nil
}

// MatchesBySport 单项目比赛（独立缓存键）
func (a *MatchAggregator) MatchesBySport(ctx context.Context, sport model.Sport) ([]*model.MatchRecord, error) {
	key := a.cacheKey(string(sport))
	if cached, ok := a.cache.get(key); ok {
		return cached[sport], nil
	}
	// 全量缓存命中时直接借用，避免为单项目重跑管线
	if cached, ok := a.cache.get(a.cacheKey("all")); ok {
		return cached[sport], nil
	}
	matches := a.sportPipeline(ctx, sport)
	a.cache.set(key, map[model.Sport][]*model.MatchRecord{sport: matches})

	if err := a.persist(ctx, map[model.Sport][]*model.MatchRecord{sport: matches}); err != nil {
		return matches, fmt.Errorf("比赛落库失败: %w", err)
	}
	return matches, nil
}

// ForceRefresh 强制刷新：先清当日全部缓存键再重算（绕过缓存语义的关键在"先清"）。
// 不取消可能在途的另一次管线——并发刷新是已接受的竞态，靠逐条upsert保证幂等。
func (a *MatchAggregator) ForceRefresh(ctx context.Context) (map[model.Sport][]*model.MatchRecord, error) {
	a.InvalidateToday()
	return a.TodayMatches(ctx)
}

// InvalidateToday 清掉当日所有作用域的缓存键
func (a *MatchAggregator) InvalidateToday() {
	a.cache.invalidate(a.cacheKey("all"))
	for _, sport := range model.AllSports {
		a.cache.invalidate(a.cacheKey(string(sport)))
	}
}

// CacheValid 当日全量缓存是否有效（调度信息展示用）
func (a *MatchAggregator) CacheValid() bool {
	return a.cache.isValid(a.cacheKey("all"))
}

// Today 当前MSK日历日
func (a *MatchAggregator) Today() string {
	return a.normalizer.Today()
}

func (a *MatchAggregator) cacheKey(scope string) string {
	return scope + "_" + a.normalizer.Today()
}

// runPipeline 一次完整管线：四项目并发、各自兜底，任一项目全挂不影响其余
func (a *MatchAggregator) runPipeline(ctx context.Context) map[model.Sport][]*model.MatchRecord {
	results := make([][]*model.MatchRecord, len(model.AllSports))
	var wg sync.WaitGroup
	for i, sport := range model.AllSports {
		wg.Add(1)
		go func(idx int, s model.Sport) {
			defer wg.Done()
			results[idx] = a.sportPipeline(ctx, s)
		}(i, sport)
	}
	wg.Wait()

	merged := make(map[model.Sport][]*model.MatchRecord, len(model.AllSports))
	total := 0
	for i, sport := range model.AllSports {
		if results[i] == nil {
			results[i] = []*model.MatchRecord{}
		}
		merged[sport] = results[i]
		total += len(results[i])
	}
	a.logger.WithField("total", total).Info("聚合管线完成")
	return merged
}

// sportPipeline 单项目管线：按优先级逐源尝试，闸门拒绝即跳过该源，
// 凑够上限提前停。全部源为空时如实返回空列表——生产管线绝不造假比赛兜底。
func (a *MatchAggregator) sportPipeline(ctx context.Context, sport model.Sport) []*model.MatchRecord {
	var raws []model.RawMatch
	for _, src := range a.sources.SourcesFor(sport) {
		if len(raws) >= a.maxPerSport {
			break
		}
		if !a.gate.CanCall(src.Name()) {
			a.logger.WithFields(logrus.Fields{"source": src.Name(), "sport": sport}).Debug("数据源处于限速间隔内，本轮跳过")
			continue
		}
		a.gate.MarkCalled(src.Name())

		res := src.FetchMatches(ctx, sport)
		switch res.Status {
		case model.FetchFailed:
			a.logger.WithError(res.Err).WithFields(logrus.Fields{"source": src.Name(), "sport": sport}).Warn("数据源抓取失败，按空处理")
		case model.FetchEmpty:
			a.logger.WithFields(logrus.Fields{"source": src.Name(), "sport": sport}).Debug("数据源无今日比赛")
		case model.FetchOK:
			raws = append(raws, res.Matches...)
		}
	}
	if len(raws) > a.maxPerSport {
		raws = raws[:a.maxPerSport]
	}
	if len(raws) == 0 {
		return []*model.MatchRecord{}
	}

	matches := make([]*model.MatchRecord, 0, len(raws))
	for _, raw := range raws {
		matches = append(matches, a.buildRecord(raw))
	}
	a.enricher.AttachOdds(ctx, sport, matches)
	for _, m := range matches {
		a.composer.Compose(ctx, m)
	}
	return matches
}

// buildRecord 原始比赛→落库记录：时间归一、派生日期、幂等键、徽标、可信度
func (a *MatchAggregator) buildRecord(raw model.RawMatch) *model.MatchRecord {
	matchTime := a.normalizer.Normalize(raw.RawTime)
	return &model.MatchRecord{
		MatchKey:     model.BuildMatchKey(raw.Sport, raw.Team1, raw.Team2, matchTime),
		Sport:        raw.Sport,
		Team1:        raw.Team1,
		Team2:        raw.Team2,
		League:       raw.League,
		LogoTeam1:    a.logos.LogoURL(raw.Team1, raw.Sport),
		LogoTeam2:    a.logos.LogoURL(raw.Team2, raw.Sport),
		MatchTime:    matchTime,
		MatchDate:    a.normalizer.MatchDate(matchTime),
		Source:       raw.Source,
		RealismScore: RealismScore(raw.Source),
	}
}

func (a *MatchAggregator) persist(ctx context.Context, bySport map[model.Sport][]*model.MatchRecord) error {
	var all []*model.MatchRecord
	for _, matches := range bySport {
		all = append(all, matches...)
	}
	if len(all) == 0 {
		return nil
	}
	return a.matchRepo.UpsertMatches(ctx, all)
}
