package footballdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"MatchSync/internal/config"
	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// SourceName 限速与可信度查表键
const SourceName = "footballdata"

// Adapter football-data.org v4 适配器（足球第一优先级源）
type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.MatchSource {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) Name() string { return SourceName }

func (a *Adapter) Sports() []model.Sport { return []model.Sport{model.SportFootball} }

// matchesResponse /v4/matches 响应结构（只取用到的字段）
type matchesResponse struct {
	Matches []struct {
		UTCDate  string `json:"utcDate"`
		Status   string `json:"status"`
		HomeTeam struct {
			Name string `json:"name"`
		} `json:"homeTeam"`
		AwayTeam struct {
			Name string `json:"name"`
		} `json:"awayTeam"`
		Competition struct {
			Name string `json:"name"`
		} `json:"competition"`
	} `json:"matches"`
}

// FetchMatches 拉取今日足球赛程。失败不抛出，包进 FetchResult。
func (a *Adapter) FetchMatches(ctx context.Context, sport model.Sport) model.FetchResult {
	if sport != model.SportFootball {
		return model.OKResult(nil)
	}
	day := time.Now().UTC().Format("2006-01-02")
	url := fmt.Sprintf("%s/matches?dateFrom=%s&dateTo=%s", a.cfg.BaseURL, day, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.FailedResult(fmt.Errorf("构造请求失败: %w", err))
	}
	req.Header.Set("X-Auth-Token", a.cfg.AuthToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return model.FailedResult(fmt.Errorf("请求football-data失败: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.FailedResult(fmt.Errorf("football-data返回状态码%d", resp.StatusCode))
	}

	var body matchesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.FailedResult(fmt.Errorf("解析football-data响应失败: %w", err))
	}

	var raws []model.RawMatch
	for _, m := range body.Matches {
		if m.HomeTeam.Name == "" || m.AwayTeam.Name == "" {
			continue
		}
		raws = append(raws, model.RawMatch{
			Source:  SourceName,
			Sport:   model.SportFootball,
			Team1:   m.HomeTeam.Name,
			Team2:   m.AwayTeam.Name,
			League:  m.Competition.Name,
			RawTime: m.UTCDate,
		})
	}
	return model.OKResult(raws)
}
