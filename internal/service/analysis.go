package service

import (
	"context"
	"fmt"
	"math"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"

	"github.com/sirupsen/logrus"
)

// Composer 文案组稿器：池里随机取一条基础分析，再接一段由赔率决策树选出的推荐。
// 推荐部分是赔率三元组的纯函数——同样的赔率永远得到同一个模板，随机只出现在基础文案。
type Composer struct {
	analysisRepo interfaces.AnalysisRepository
	logger       *logrus.Logger
}

func NewComposer(analysisRepo interfaces.AnalysisRepository, logger *logrus.Logger) *Composer {
	return &Composer{analysisRepo: analysisRepo, logger: logger}
}

// Compose 填充 match 的 Analysis 与 Prediction
func (c *Composer) Compose(ctx context.Context, m *model.MatchRecord) {
	base, err := c.analysisRepo.RandomBySport(ctx, m.Sport)
	if err != nil {
		c.logger.WithError(err).WithField("sport", m.Sport).Warn("取分析文案失败，仅保留推荐部分")
	}
	rec, pred := Recommend(m.Sport, m.Team1, m.Team2, m.OddsTeam1, m.OddsTeam2, m.OddsDraw)
	if base != "" {
		m.Analysis = base + "\n\n" + rec
	} else {
		m.Analysis = rec
	}
	m.Prediction = pred
}

// Recommend 赔率决策树（纯函数）：
//  1. 一方赔率≤1.6且严格低于另一方 → 强阵容热门；
//  2. 双方都≥2.5且平局≤2.2（仅足球） → 平局概率高；
//  3. 双方差值≤0.3 → 建议转投大小球/让分盘；
//  4. 较低一方落在(1.8, 2.8)开区间 → 价值注；
//  5. 其余 → 通用热门模板。
func Recommend(sport model.Sport, team1, team2 string, odds1, odds2 float64, oddsDraw *float64) (recommendation, prediction string) {
	fav, other := team1, team2
	favOdds := odds1
	if odds2 < odds1 {
		fav, other = team2, team1
		favOdds = odds2
	}

	switch {
	case favOdds <= 1.6 && odds1 != odds2:
		recommendation = fmt.Sprintf("Рекомендация: %s выглядит явным фаворитом (коэффициент %.2f). Ставка на победу %s — основной вариант.", fav, favOdds, fav)
		prediction = fmt.Sprintf("Победа %s", fav)
	case sport.HasDraw() && oddsDraw != nil && odds1 >= 2.5 && odds2 >= 2.5 && *oddsDraw <= 2.2:
		recommendation = fmt.Sprintf("Рекомендация: равные шансы команд и низкий коэффициент на ничью (%.2f) указывают на вероятный ничейный исход.", *oddsDraw)
		prediction = "Ничья"
	case math.Abs(odds1-odds2) <= 0.3:
		recommendation = "Рекомендация: котировки практически равны, исход малопредсказуем. Разумнее смотреть в сторону тоталов и фор, а не основного рынка."
		prediction = "Тотал/фора вместо основного исхода"
	case favOdds > 1.8 && favOdds < 2.8:
		recommendation = fmt.Sprintf("Рекомендация: коэффициент %.2f на %s выглядит завышенным относительно формы команд — ценная ставка (value bet).", favOdds, fav)
		prediction = fmt.Sprintf("Value: победа %s", fav)
	default:
		recommendation = fmt.Sprintf("Рекомендация: букмекеры видят фаворитом %s, соперник — %s. Базовый вариант — ставка на фаворита.", fav, other)
		prediction = fmt.Sprintf("Фаворит: %s", fav)
	}
	return recommendation, prediction
}
