package scheduler

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"MatchSync/internal/config"
	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Aggregator 调度器对聚合服务的依赖面（测试用假实现替换）
type Aggregator interface {
	ForceRefresh(ctx context.Context) (map[model.Sport][]*model.MatchRecord, error)
	InvalidateToday()
	Today() string
}

// ScheduleInfo 调度信息（API层展示）
type ScheduleInfo struct {
	DailyMatchUpdate string `json:"dailyMatchUpdate"`
	OldMatchCleanup  string `json:"oldMatchCleanup"`
	Timezone         string `json:"timezone"`
}

// Scheduler 两个互相独立的定时任务：每日全量刷新 + 午夜过期清理。
// 自持启停句柄，作业体是可直接调用的方法，测试不依赖真实cron触发。
// 手动刷新与cron作业之间没有互斥——并发跑同一天是已接受的竞态（靠逐条upsert幂等）。
type Scheduler struct {
	cron       *gocron.Scheduler
	aggregator Aggregator
	matchRepo  interfaces.MatchRepository
	statsRepo  interfaces.StatsRepository
	cfg        config.ScheduleConfig
	logger     *logrus.Logger
}

func NewScheduler(
	aggregator Aggregator,
	matchRepo interfaces.MatchRepository,
	statsRepo interfaces.StatsRepository,
	cfg config.ScheduleConfig,
	logger *logrus.Logger,
) *Scheduler {
	loc := time.FixedZone("MSK", cfg.TimezoneOffset*3600)
	return &Scheduler{
		cron:       gocron.NewScheduler(loc),
		aggregator: aggregator,
		matchRepo:  matchRepo,
		statsRepo:  statsRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start 注册两个cron作业并异步启动
func (s *Scheduler) Start() error {
	if _, err := s.cron.Cron(s.cfg.DailyMatchUpdate).Do(func() {
		if err := s.RunDailyRefresh(context.Background()); err != nil {
			s.logger.WithError(err).Error("每日刷新作业失败，等待下一次触发")
		}
	}); err != nil {
		return fmt.Errorf("注册每日刷新作业失败: %w", err)
	}
	if _, err := s.cron.Cron(s.cfg.OldMatchCleanup).Do(func() {
		if err := s.RunCleanup(context.Background()); err != nil {
			s.logger.WithError(err).Error("过期清理作业失败，等待下一次触发")
		}
	}); err != nil {
		return fmt.Errorf("注册过期清理作业失败: %w", err)
	}
	s.cron.StartAsync()
	s.logger.WithFields(logrus.Fields{
		"daily_match_update": s.cfg.DailyMatchUpdate,
		"old_match_cleanup":  s.cfg.OldMatchCleanup,
	}).Info("定时任务已启动")
	return nil
}

// Stop 停止调度（等待在途作业结束）
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunDailyRefresh 每日刷新：删当日→清缓存→全量重跑→重新落库→统计行小幅抬升。
// 落库失败向上抛给调用方记日志，本轮放弃，不安排重试。
func (s *Scheduler) RunDailyRefresh(ctx context.Context) error {
	today := s.aggregator.Today()
	deleted, err := s.matchRepo.DeleteByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("删除当日记录失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"date": today, "deleted": deleted}).Info("当日记录已清空，开始全量刷新")

	result, err := s.aggregator.ForceRefresh(ctx)
	if err != nil {
		return fmt.Errorf("全量刷新失败: %w", err)
	}

	counters := make(map[model.Sport]int, len(result))
	total := 0
	for sport, matches := range result {
		counters[sport] = len(matches)
		total += len(matches)
	}
	// 统计行抬升是展示用途的装饰值，不是真实分析
	delta := model.StatsDelta{
		Predictions:   int64(50 + rand.Intn(150)),
		SuccessRate:   math.Round((72+rand.Float64()*8)*100) / 100,
		ActiveUsers:   int64(10 + rand.Intn(90)),
		SportCounters: counters,
	}
	if err := s.statsRepo.BumpDaily(ctx, delta); err != nil {
		s.logger.WithError(err).Warn("统计行更新失败（不影响比赛数据）")
	}

	s.logger.WithFields(logrus.Fields{"date": today, "matches": total}).Info("每日刷新完成")
	return nil
}

// RunCleanup 过期清理：删掉 match_date 早于今日的全部记录（今日存活）
func (s *Scheduler) RunCleanup(ctx context.Context) error {
	today := s.aggregator.Today()
	deleted, err := s.matchRepo.DeleteOlderThan(ctx, today)
	if err != nil {
		return fmt.Errorf("清理过期记录失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"before": today, "deleted": deleted}).Info("过期记录清理完成")
	return nil
}

// ManualUpdate 手动触发一次同步刷新（调试/运营入口），与cron作业同一套逻辑
func (s *Scheduler) ManualUpdate(ctx context.Context) error {
	s.logger.Info("手动触发全量刷新")
	return s.RunDailyRefresh(ctx)
}

// Info 当前调度配置
func (s *Scheduler) Info() ScheduleInfo {
	return ScheduleInfo{
		DailyMatchUpdate: s.cfg.DailyMatchUpdate,
		OldMatchCleanup:  s.cfg.OldMatchCleanup,
		Timezone:         fmt.Sprintf("UTC+%d (MSK)", s.cfg.TimezoneOffset),
	}
}
