package interfaces

import (
	"context"

	"MatchSync/internal/model"
)

// MatchRepository 比赛记录仓储
type MatchRepository interface {
	// UpsertMatches 按 match_key 幂等入库（存在则更新赔率/文案等可变字段）
	UpsertMatches(ctx context.Context, matches []*model.MatchRecord) error
	// ListByDate 按 match_date 查询
	ListByDate(ctx context.Context, date string) ([]*model.MatchRecord, error)
	// ListBySportAndDate 按项目+日期查询
	ListBySportAndDate(ctx context.Context, sport model.Sport, date string) ([]*model.MatchRecord, error)
	// DeleteByDate 删除某日全部记录（每日刷新先删后建）
	DeleteByDate(ctx context.Context, date string) (int64, error)
	// DeleteOlderThan 删除 match_date 早于 date 的全部记录（过期清理）
	DeleteOlderThan(ctx context.Context, date string) (int64, error)
	// CountByDate 某日记录数
	CountByDate(ctx context.Context, date string) (int64, error)
}

// StatsRepository 站点统计仓储（单行表的增量/覆盖操作）
type StatsRepository interface {
	Get(ctx context.Context) (*model.SiteStats, error)
	BumpDaily(ctx context.Context, delta model.StatsDelta) error
}

// AnalysisRepository 分析文案池仓储
type AnalysisRepository interface {
	// SeedIfEmpty 池为空时按静态表灌入（建库初始化）
	SeedIfEmpty(ctx context.Context) error
	// RandomBySport 按项目随机取一条文案
	RandomBySport(ctx context.Context, sport model.Sport) (string, error)
}
