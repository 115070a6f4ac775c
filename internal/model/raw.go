package model

import "time"

// RawMatch 各适配器抓取后的统一原始比赛结构（未富化）
type RawMatch struct {
	Source  string // 来源适配器名
	Sport   Sport  // 体育项目
	Team1   string // 队伍1
	Team2   string // 队伍2
	League  string // 联赛/赛事名（可空）
	RawTime string // 平台原始时间串，交由时间归一器解析
}

// FetchStatus 单次抓取结果状态
type FetchStatus string

const (
	FetchOK     FetchStatus = "ok"     // 成功且有数据
	FetchEmpty  FetchStatus = "empty"  // 成功但无数据（合法结果，不造假数据兜底）
	FetchFailed FetchStatus = "failed" // 抓取失败（网络/解析/鉴权）
)

// FetchResult 显式抓取结果：区分"确实没有比赛"与"适配器挂了"，
// 失败不向上抛异常，由编排器记日志后按空处理。
type FetchResult struct {
	Status  FetchStatus
	Matches []RawMatch
	Err     error // 仅 Status==FetchFailed 时有值
}

// OKResult 构造成功结果（空列表自动归为 FetchEmpty）
func OKResult(matches []RawMatch) FetchResult {
	if len(matches) == 0 {
		return FetchResult{Status: FetchEmpty}
	}
	return FetchResult{Status: FetchOK, Matches: matches}
}

// FailedResult 构造失败结果
func FailedResult(err error) FetchResult {
	return FetchResult{Status: FetchFailed, Err: err}
}

// OddsQuote 赔率源返回的单场报价（按模糊队名匹配挂到比赛上）
type OddsQuote struct {
	Team1     string
	Team2     string
	OddsTeam1 float64
	OddsTeam2 float64
	OddsDraw  *float64 // 有平局盘口的项目才有值
	FetchedAt time.Time
}
