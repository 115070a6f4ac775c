package mlbstats

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
const SourceName = "mlbstats"

// Adapter MLB statsapi 官方赛程适配器（棒球第一优先级源，无需鉴权）
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

func (a *Adapter) Sports() []model.Sport { return []model.Sport{model.SportBaseball} }

// scheduleResponse /schedule 响应结构
type scheduleResponse struct {
	Dates []struct {
		Games []struct {
			GameDate string `json:"gameDate"`
			Teams    struct {
				Away struct {
					Team struct {
						Name string `json:"name"`
					} `json:"team"`
				} `json:"away"`
				Home struct {
					Team struct {
						Name string `json:"name"`
					} `json:"team"`
				} `json:"home"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

func (a *Adapter) FetchMatches(ctx context.Context, sport model.Sport) model.FetchResult {
	if sport != model.SportBaseball {
		return model.OKResult(nil)
	}
	day := time.Now().UTC().Format("2006-01-02")
	url := fmt.Sprintf("%s/schedule?sportId=1&date=%s", a.cfg.BaseURL, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.FailedResult(fmt.Errorf("构造请求失败: %w", err))
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return model.FailedResult(fmt.Errorf("请求mlbstats失败: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.FailedResult(fmt.Errorf("mlbstats返回状态码%d", resp.StatusCode))
	}

	var body scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.FailedResult(fmt.Errorf("解析mlbstats响应失败: %w", err))
	}

	var raws []model.RawMatch
	for _, d := range body.Dates {
		for _, g := range d.Games {
			if g.Teams.Home.Team.Name == "" || g.Teams.Away.Team.Name == "" {
				continue
			}
			raws = append(raws, model.RawMatch{
				Source:  SourceName,
				Sport:   model.SportBaseball,
				Team1:   g.Teams.Home.Team.Name,
				Team2:   g.Teams.Away.Team.Name,
				League:  "MLB",
				RawTime: g.GameDate,
			})
		}
	}
	return model.OKResult(raws)
}
