package repository

import (
	"context"
	"time"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建 MatchRepository 实例
func NewMatchRepository(db *gorm.DB) interfaces.MatchRepository {
	return &matchRepository{db: db}
}

// UpsertMatches 按 match_key 幂等入库。
// 自然键含 match_time：上游源时间漂移会产生新记录而非去重（已知边界情况，保持原样）。
func (r *matchRepository) UpsertMatches(ctx context.Context, matches []*model.MatchRecord) error {
	if len(matches) == 0 {
		return nil
	}
	for i := range matches {
		if matches[i].MatchUUID == "" {
			matches[i].MatchUUID = uuid.NewString() // 生成全局唯一ID
		}
		matches[i].UpdatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "match_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"odds_team1", "odds_team2", "odds_draw", "odds_source",
			"analysis", "prediction", "logo_team1", "logo_team2",
			"league", "realism_score", "updated_at",
		}),
	}).Create(&matches).Error
}

// ListByDate 按 match_date 查询，按开赛时间升序
func (r *matchRepository) ListByDate(ctx context.Context, date string) ([]*model.MatchRecord, error) {
	var matches []*model.MatchRecord
	if err := r.db.WithContext(ctx).
		Where("match_date = ?", date).
		Order("match_time ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// ListBySportAndDate 按项目+日期查询
func (r *matchRepository) ListBySportAndDate(ctx context.Context, sport model.Sport, date string) ([]*model.MatchRecord, error) {
	var matches []*model.MatchRecord
	if err := r.db.WithContext(ctx).
		Where("sport = ? AND match_date = ?", sport, date).
		Order("match_time ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// DeleteByDate 删除某日全部记录（每日刷新先删后建）
func (r *matchRepository) DeleteByDate(ctx context.Context, date string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("match_date = ?", date).
		Delete(&model.MatchRecord{})
	return res.RowsAffected, res.Error
}

// DeleteOlderThan 删除 match_date 早于 date 的全部记录
func (r *matchRepository) DeleteOlderThan(ctx context.Context, date string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("match_date < ?", date).
		Delete(&model.MatchRecord{})
	return res.RowsAffected, res.Error
}

// CountByDate 某日记录数
func (r *matchRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MatchRecord{}).
		Where("match_date = ?", date).
		Count(&count).Error
	return count, err
}
