package model

import (
	"time"

	"gorm.io/datatypes"
)

// SiteStats 站点统计单行表（每日刷新时小幅随机抬升，仅展示用途，非真实分析结果）
type SiteStats struct {
	ID               uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"-"`
	TotalPredictions int64          `gorm:"column:total_predictions;type:bigint;default:0;comment:累计预测数" json:"total_predictions"`
	SuccessRate      float64        `gorm:"column:success_rate;type:numeric(5,2);default:0;comment:展示成功率" json:"success_rate"`
	ActiveUsers      int64          `gorm:"column:active_users;type:bigint;default:0;comment:展示活跃用户数" json:"active_users"`
	SportCounters    datatypes.JSON `gorm:"column:sport_counters;type:jsonb;comment:各项目比赛计数" json:"sport_counters"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updated_at"`
}

func (SiteStats) TableName() string { return "site_stats" }

// StatsDelta 每日刷新对统计行的增量
type StatsDelta struct {
	Predictions   int64         // total_predictions 增量
	SuccessRate   float64       // success_rate 直接设置值
	ActiveUsers   int64         // active_users 增量
	SportCounters map[Sport]int // 各项目今日比赛数（覆盖写入jsonb）
}
