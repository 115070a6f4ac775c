package apisports

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
const SourceName = "apisports"

// Adapter api-sports.io 适配器。足球与冰球共用一个key，
// 但接口域名按项目不同（v3.football / v1.hockey），在这里按项目替换。
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

func (a *Adapter) Sports() []model.Sport {
	return []model.Sport{model.SportFootball, model.SportHockey}
}

// footballResponse /fixtures 响应（足球）
type footballResponse struct {
	Response []struct {
		Fixture struct {
			Date string `json:"date"`
		} `json:"fixture"`
		League struct {
			Name string `json:"name"`
		} `json:"league"`
		Teams struct {
			Home struct {
				Name string `json:"name"`
			} `json:"home"`
			Away struct {
				Name string `json:"name"`
			} `json:"away"`
		} `json:"teams"`
	} `json:"response"`
}

// hockeyResponse /games 响应（冰球）
type hockeyResponse struct {
	Response []struct {
		Date   string `json:"date"`
		League struct {
			Name string `json:"name"`
		} `json:"league"`
		Teams struct {
			Home struct {
				Name string `json:"name"`
			} `json:"home"`
			Away struct {
				Name string `json:"name"`
			} `json:"away"`
		} `json:"teams"`
	} `json:"response"`
}

func (a *Adapter) FetchMatches(ctx context.Context, sport model.Sport) model.FetchResult {
	day := time.Now().UTC().Format("2006-01-02")
	var url string
	switch sport {
	case model.SportFootball:
		url = fmt.Sprintf("%s/fixtures?date=%s", a.cfg.BaseURL, day)
	case model.SportHockey:
		// 足球域名换成冰球域名，路径与参数形态一致
		base := strings.Replace(a.cfg.BaseURL, "v3.football", "v1.hockey", 1)
		url = fmt.Sprintf("%s/games?date=%s", base, day)
	default:
		return model.OKResult(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.FailedResult(fmt.Errorf("构造请求失败: %w", err))
	}
	req.Header.Set("x-apisports-key", a.cfg.AuthToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return model.FailedResult(fmt.Errorf("请求api-sports失败: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.FailedResult(fmt.Errorf("api-sports返回状态码%d", resp.StatusCode))
	}

	var raws []model.RawMatch
	switch sport {
	case model.SportFootball:
		var body footballResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return model.FailedResult(fmt.Errorf("解析api-sports足球响应失败: %w", err))
		}
		for _, item := range body.Response {
			if item.Teams.Home.Name == "" || item.Teams.Away.Name == "" {
				continue
			}
			raws = append(raws, model.RawMatch{
				Source:  SourceName,
				Sport:   sport,
				Team1:   item.Teams.Home.Name,
				Team2:   item.Teams.Away.Name,
				League:  item.League.Name,
				RawTime: item.Fixture.Date,
			})
		}
	case model.SportHockey:
		var body hockeyResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return model.FailedResult(fmt.Errorf("解析api-sports冰球响应失败: %w", err))
		}
		for _, item := range body.Response {
			if item.Teams.Home.Name == "" || item.Teams.Away.Name == "" {
				continue
			}
			raws = append(raws, model.RawMatch{
				Source:  SourceName,
				Sport:   sport,
				Team1:   item.Teams.Home.Name,
				Team2:   item.Teams.Away.Name,
				League:  item.League.Name,
				RawTime: item.Date,
			})
		}
	}
	return model.OKResult(raws)
}
