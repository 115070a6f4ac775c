package service

import (
	"context"
	"math"
	"math/rand"
	"strings"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/ratelimit"

	"github.com/sirupsen/logrus"
)

// 合成赔率取值范围
const (
	synOddsMin = 1.40
	synOddsMax = 3.90
	synDrawMin = 2.50
	synDrawMax = 4.20
)

// OddsEnricher 赔率富化器：优先挂真实盘口（按模糊队名匹配），
// 赔率源被限速或无匹配时回落为合成赔率并标记来源。
type OddsEnricher struct {
	feed   interfaces.OddsFeed // 可为nil（源未启用）
	gate   *ratelimit.SourceGate
	logger *logrus.Logger
}

func NewOddsEnricher(feed interfaces.OddsFeed, gate *ratelimit.SourceGate, logger *logrus.Logger) *OddsEnricher {
	return &OddsEnricher{
		feed:   feed,
		gate:   gate,
		logger: logger,
	}
}

// AttachOdds 为一个项目的全部比赛挂赔率。真实报价整个项目只拉一次。
func (e *OddsEnricher) AttachOdds(ctx context.Context, sport model.Sport, matches []*model.MatchRecord) {
	var quotes []model.OddsQuote
	if e.feed != nil && e.gate.CanCall(e.feed.Name()) {
		e.gate.MarkCalled(e.feed.Name())
		fetched, err := e.feed.FetchOdds(ctx, sport)
		if err != nil {
			e.logger.WithError(err).WithField("sport", sport).Warn("真实赔率源拉取失败，回落合成赔率")
		} else {
			quotes = fetched
		}
	}

	for _, m := range matches {
		if q, ok := findQuote(quotes, m.Team1, m.Team2); ok {
			m.OddsTeam1 = q.OddsTeam1
			m.OddsTeam2 = q.OddsTeam2
			if sport.HasDraw() {
				m.OddsDraw = q.OddsDraw
			}
			m.OddsSource = model.OddsSourceReal
			continue
		}
		e.synthesize(m)
	}
}

// synthesize 合成赔率：双方[1.40,3.90]均匀取值，保留2位小数；足球另给平局赔率。
// 全局rand自带锁，各项目管线并发合成没有问题。
func (e *OddsEnricher) synthesize(m *model.MatchRecord) {
	m.OddsTeam1 = round2(synOddsMin + rand.Float64()*(synOddsMax-synOddsMin))
	m.OddsTeam2 = round2(synOddsMin + rand.Float64()*(synOddsMax-synOddsMin))
	if m.Sport.HasDraw() {
		draw := round2(synDrawMin + rand.Float64()*(synDrawMax-synDrawMin))
		m.OddsDraw = &draw
	} else {
		m.OddsDraw = nil
	}
	m.OddsSource = model.OddsSourceSynthetic
}

// findQuote 在报价列表里找双方队名都模糊命中的那条
func findQuote(quotes []model.OddsQuote, team1, team2 string) (model.OddsQuote, bool) {
	for _, q := range quotes {
		if teamsAlike(q.Team1, team1) && teamsAlike(q.Team2, team2) {
			return q, true
		}
	}
	return model.OddsQuote{}, false
}

// teamsAlike 大小写无关的首词包含启发式：任一方向首词被对方全名包含即视为同队。
// 例如 "Liverpool" 命中 "Liverpool FC"，"Spartak Moscow" 命中 "Spartak"。
func teamsAlike(a, b string) bool {
	la, lb := strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(lb, firstToken(la)) || strings.Contains(la, firstToken(lb))
}

func firstToken(s string) string {
	if i := strings.IndexAny(s, " \t"); i > 0 {
		return s[:i]
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
