package adapter

import (
	"MatchSync/internal/adapter/apisports"
	"MatchSync/internal/adapter/footballdata"
	"MatchSync/internal/adapter/mlbstats"
	"MatchSync/internal/adapter/nhlweb"
	"MatchSync/internal/adapter/pandascore"
	"MatchSync/internal/adapter/theoddsapi"
	"MatchSync/internal/config"
	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"

	"github.com/sirupsen/logrus"
)

// factory 数据源适配器工厂函数签名
type factory func(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.MatchSource

// factoryRegistry 源名→工厂函数。新增数据源仅需添加此处。
var factoryRegistry = map[string]factory{
	footballdata.SourceName: footballdata.NewAdapter,
	apisports.SourceName:    apisports.NewAdapter,
	mlbstats.SourceName:     mlbstats.NewAdapter,
	nhlweb.SourceName:       nhlweb.NewAdapter,
	pandascore.SourceName:   pandascore.NewAdapter,
}

// sportPriority 各项目的数据源优先级（严格按声明顺序逐个尝试，单轮内不重试）
var sportPriority = map[model.Sport][]string{
	model.SportFootball: {footballdata.SourceName, apisports.SourceName},
	model.SportBaseball: {mlbstats.SourceName},
	model.SportHockey:   {nhlweb.SourceName, apisports.SourceName},
	model.SportEsports:  {pandascore.SourceName},
}

// SourceRegistry 按项目维护有序适配器列表
type SourceRegistry struct {
	cfg    *config.Config
	logger *logrus.Logger
	// 源名→已初始化实例
	sources map[string]interfaces.MatchSource
}

// NewSourceRegistry 按配置初始化全部启用的数据源适配器
func NewSourceRegistry(cfg *config.Config, logger *logrus.Logger) *SourceRegistry {
	r := &SourceRegistry{
		cfg:     cfg,
		logger:  logger,
		sources: make(map[string]interfaces.MatchSource),
	}
	for name, build := range factoryRegistry {
		srcCfg, ok := cfg.Sources[name]
		if !ok || !srcCfg.Enabled {
			logger.WithField("source", name).Info("数据源未配置或未启用，跳过")
			continue
		}
		ins := build(&srcCfg, logger)
		if ins == nil {
			logger.WithField("source", name).Error("工厂函数返回nil适配器实例")
			continue
		}
		r.sources[name] = ins
		logger.WithField("source", name).Info("数据源适配器初始化成功")
	}
	logger.WithField("count", len(r.sources)).Info("数据源适配器初始化完成")
	return r
}

// SourcesFor 返回某项目的有序适配器列表（未初始化的源自动跳过）
func (r *SourceRegistry) SourcesFor(sport model.Sport) []interfaces.MatchSource {
	var out []interfaces.MatchSource
	for _, name := range sportPriority[sport] {
		if src, ok := r.sources[name]; ok {
			out = append(out, src)
		}
	}
	return out
}

// OddsFeed 返回真实赔率源（未启用时为nil，富化器自动回落合成赔率）
func (r *SourceRegistry) OddsFeed() interfaces.OddsFeed {
	srcCfg, ok := r.cfg.Sources[theoddsapi.SourceName]
	if !ok || !srcCfg.Enabled {
		return nil
	}
	return theoddsapi.NewFeed(&srcCfg, r.logger)
}

// SourceCount 已初始化的数据源数量
func (r *SourceRegistry) SourceCount() int {
	return len(r.sources)
}
