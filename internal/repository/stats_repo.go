package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"

	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建 StatsRepository 实例
func NewStatsRepository(db *gorm.DB) interfaces.StatsRepository {
	return &statsRepository{db: db}
}

// Get 读取统计行，不存在则初始化一行（展示基准值）
func (r *statsRepository) Get(ctx context.Context) (*model.SiteStats, error) {
	var stats model.SiteStats
	err := r.db.WithContext(ctx).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = model.SiteStats{
			TotalPredictions: 14200,
			SuccessRate:      78.5,
			ActiveUsers:      3100,
		}
		if err := r.db.WithContext(ctx).Create(&stats).Error; err != nil {
			return nil, fmt.Errorf("初始化统计行失败: %w", err)
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// BumpDaily 每日刷新对统计行做小幅增量（展示用途）
func (r *statsRepository) BumpDaily(ctx context.Context, delta model.StatsDelta) error {
	stats, err := r.Get(ctx)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"total_predictions": gorm.Expr("total_predictions + ?", delta.Predictions),
		"active_users":      gorm.Expr("active_users + ?", delta.ActiveUsers),
		"updated_at":        time.Now(),
	}
	if delta.SuccessRate > 0 {
		updates["success_rate"] = delta.SuccessRate
	}
	if len(delta.SportCounters) > 0 {
		raw, err := json.Marshal(delta.SportCounters)
		if err != nil {
			return fmt.Errorf("序列化项目计数失败: %w", err)
		}
		updates["sport_counters"] = raw
	}
	return r.db.WithContext(ctx).Model(&model.SiteStats{}).
		Where("id = ?", stats.ID).
		Updates(updates).Error
}
