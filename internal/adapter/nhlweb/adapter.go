package nhlweb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"MatchSync/internal/config"
	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// SourceName 限速与可信度查表键
const SourceName = "nhlweb"

// Adapter NHL 官方赛程适配器（冰球第一优先级源，无需鉴权）
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

func (a *Adapter) Sports() []model.Sport { return []model.Sport{model.SportHockey} }

// scheduleResponse /schedule/{date} 响应结构
type scheduleResponse struct {
	GameWeek []struct {
		Date  string `json:"date"`
		Games []struct {
			StartTimeUTC string `json:"startTimeUTC"`
			AwayTeam     struct {
				PlaceName struct {
					Default string `json:"default"`
				} `json:"placeName"`
				CommonName struct {
					Default string `json:"default"`
				} `json:"commonName"`
			} `json:"awayTeam"`
			HomeTeam struct {
				PlaceName struct {
					Default string `json:"default"`
				} `json:"placeName"`
				CommonName struct {
					Default string `json:"default"`
				} `json:"commonName"`
			} `json:"homeTeam"`
		} `json:"games"`
	} `json:"gameWeek"`
}

func (a *Adapter) FetchMatches(ctx context.Context, sport model.Sport) model.FetchResult {
	if sport != model.SportHockey {
		return model.OKResult(nil)
	}
	day := time.Now().UTC().Format("2006-01-02")
	url := fmt.Sprintf("%s/schedule/%s", a.cfg.BaseURL, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.FailedResult(fmt.Errorf("构造请求失败: %w", err))
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return model.FailedResult(fmt.Errorf("请求nhlweb失败: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.FailedResult(fmt.Errorf("nhlweb返回状态码%d", resp.StatusCode))
	}

	var body scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.FailedResult(fmt.Errorf("解析nhlweb响应失败: %w", err))
	}

	var raws []model.RawMatch
	for _, week := range body.GameWeek {
		// 响应带整周赛程，只取今日
		if week.Date != day {
			continue
		}
		for _, g := range week.Games {
			home := teamName(g.HomeTeam.PlaceName.Default, g.HomeTeam.CommonName.Default)
			away := teamName(g.AwayTeam.PlaceName.Default, g.AwayTeam.CommonName.Default)
			if home == "" || away == "" {
				continue
			}
			raws = append(raws, model.RawMatch{
				Source:  SourceName,
				Sport:   model.SportHockey,
				Team1:   home,
				Team2:   away,
				League:  "NHL",
				RawTime: g.StartTimeUTC,
			})
		}
	}
	return model.OKResult(raws)
}

func teamName(place, common string) string {
	return strings.TrimSpace(strings.TrimSpace(place) + " " + strings.TrimSpace(common))
}
