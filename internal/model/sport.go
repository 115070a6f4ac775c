package model

// Sport 体育项目枚举
type Sport string

const (
	SportFootball Sport = "football"
	SportBaseball Sport = "baseball"
	SportHockey   Sport = "hockey"
	SportEsports  Sport = "esports"
)

// AllSports 聚合管线覆盖的全部体育项目（顺序固定，前端按此顺序展示）
var AllSports = []Sport{SportFootball, SportBaseball, SportHockey, SportEsports}

// Valid 判断是否为受支持的体育项目
func (s Sport) Valid() bool {
	switch s {
	case SportFootball, SportBaseball, SportHockey, SportEsports:
		return true
	}
	return false
}

// HasDraw 该项目是否存在平局盘口（仅足球）
func (s Sport) HasDraw() bool {
	return s == SportFootball
}

// MatchStatus 比赛状态（派生值，不落库）
type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
)

// OddsSource 赔率来源标记
const (
	OddsSourceReal      = "real"      // 真实赔率API
	OddsSourceSynthetic = "synthetic" // 合成赔率
)
