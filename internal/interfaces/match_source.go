package interfaces

import (
	"context"

	"MatchSync/internal/model"
)

// MatchSource 所有比赛数据源适配器必须实现的核心接口。
// FetchMatches 不抛异常：内部错误包在 FetchResult 里返回，由编排器决定怎么处理。
type MatchSource interface {
	// Name 数据源名（限速与可信度按此键查表）
	Name() string
	// Sports 该源覆盖的体育项目
	Sports() []model.Sport
	// FetchMatches 抓取某项目当日比赛
	FetchMatches(ctx context.Context, sport model.Sport) model.FetchResult
}

// OddsFeed 真实赔率源（赔率富化器优先使用，限速或无匹配时回落为合成赔率）
type OddsFeed interface {
	Name() string
	FetchOdds(ctx context.Context, sport model.Sport) ([]model.OddsQuote, error)
}

// LogoResolver 队伍徽标解析（外部协作方，尽力而为，永远返回某个URL，不会让管线失败）
type LogoResolver interface {
	LogoURL(team string, sport model.Sport) string
}
