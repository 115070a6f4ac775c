package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// MatchRecord 比赛记录主表（每天每项目若干条，管线全量刷新）
// match_key 为幂等upsert键：同一(sport, team1, team2, match_time)重跑不产生重复记录。
// 注意：上游源在赛程未定稿前可能报出略有偏移的 match_time，此时会生成新的 match_key
// 进而产生第二条逻辑上相同的比赛——与原有行为保持一致，不做去重。
type MatchRecord struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"-"`
	MatchUUID    string    `gorm:"column:match_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID" json:"match_uuid"`
	MatchKey     string    `gorm:"column:match_key;type:varchar(64);uniqueIndex;not null;comment:幂等键sport+teams+time" json:"-"`
	Sport        Sport     `gorm:"column:sport;type:varchar(16);index;not null;comment:体育项目" json:"sport"`
	Team1        string    `gorm:"column:team1;type:varchar(128);not null;comment:队伍1" json:"team1"`
	Team2        string    `gorm:"column:team2;type:varchar(128);not null;comment:队伍2" json:"team2"`
	LogoTeam1    string    `gorm:"column:logo_team1;type:varchar(256);comment:队伍1徽标URL" json:"logo_team1"`
	LogoTeam2    string    `gorm:"column:logo_team2;type:varchar(256);comment:队伍2徽标URL" json:"logo_team2"`
	League       string    `gorm:"column:league;type:varchar(128);comment:联赛/赛事名" json:"league,omitempty"`
	MatchTime    time.Time `gorm:"column:match_time;type:timestamp;not null;comment:开赛时间(MSK)" json:"match_time"`
	MatchDate    string    `gorm:"column:match_date;type:varchar(10);index;not null;comment:开赛日期YYYY-MM-DD(MSK)" json:"match_date"`
	OddsTeam1    float64   `gorm:"column:odds_team1;type:numeric(6,2);not null;comment:队伍1赔率" json:"odds_team1"`
	OddsTeam2    float64   `gorm:"column:odds_team2;type:numeric(6,2);not null;comment:队伍2赔率" json:"odds_team2"`
	OddsDraw     *float64  `gorm:"column:odds_draw;type:numeric(6,2);comment:平局赔率(仅足球)" json:"odds_draw,omitempty"`
	OddsSource   string    `gorm:"column:odds_source;type:varchar(16);not null;comment:赔率来源real/synthetic" json:"odds_source"`
	Analysis     string    `gorm:"column:analysis;type:text;comment:分析文本" json:"analysis"`
	Prediction   string    `gorm:"column:prediction;type:varchar(256);comment:推荐预测短语" json:"prediction"`
	Source       string    `gorm:"column:source;type:varchar(32);not null;comment:来源适配器" json:"source"`
	RealismScore float64   `gorm:"column:realism_score;type:numeric(3,2);not null;comment:来源可信度[0,1]" json:"realism_score"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"-"`
}

func (MatchRecord) TableName() string { return "matches" }

// liveWindow 开赛后视为进行中的时长，覆盖四个项目的典型比赛时长
const liveWindow = 3 * time.Hour

// Status 按开赛时间派生比赛状态（无实时比分源，不落库）
func (m *MatchRecord) Status(now time.Time) MatchStatus {
	switch {
	case now.Before(m.MatchTime):
		return StatusScheduled
	case now.Before(m.MatchTime.Add(liveWindow)):
		return StatusLive
	default:
		return StatusFinished
	}
}

// BuildMatchKey 由(sport, team1, team2, match_time)生成确定性幂等键
func BuildMatchKey(sport Sport, team1, team2 string, matchTime time.Time) string {
	data := fmt.Sprintf("%s|%s|%s|%d", sport, team1, team2, matchTime.Unix())
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])[:32]
}
