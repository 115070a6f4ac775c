package theoddsapi

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
const SourceName = "theoddsapi"

// sportKeys 项目→the-odds-api 的 sport key。电竞无盘口，富化器对其直接走合成赔率。
var sportKeys = map[model.Sport]string{
	model.SportFootball: "soccer_epl",
	model.SportBaseball: "baseball_mlb",
	model.SportHockey:   "icehockey_nhl",
}

// Feed the-odds-api 真实赔率源。不是比赛源——只给赔率富化器供价。
type Feed struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewFeed(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.OddsFeed {
	return &Feed{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (f *Feed) Name() string { return SourceName }

// oddsEvent /sports/{key}/odds 响应单项
type oddsEvent struct {
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Bookmakers []struct {
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string  `json:"name"`
				Price float64 `json:"price"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// FetchOdds 拉取某项目的胜平负（h2h）报价，取每场第一个庄家的盘口。
func (f *Feed) FetchOdds(ctx context.Context, sport model.Sport) ([]model.OddsQuote, error) {
	key, ok := sportKeys[sport]
	if !ok {
		return nil, nil
	}
	url := fmt.Sprintf("%s/sports/%s/odds?apiKey=%s&regions=eu&markets=h2h", f.cfg.BaseURL, key, f.cfg.AuthToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求the-odds-api失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("the-odds-api返回状态码%d", resp.StatusCode)
	}

	var events []oddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("解析the-odds-api响应失败: %w", err)
	}

	now := time.Now()
	var quotes []model.OddsQuote
	for _, ev := range events {
		q, ok := quoteFromEvent(ev, now)
		if !ok {
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// quoteFromEvent 从事件里取第一个带h2h盘口的庄家报价
func quoteFromEvent(ev oddsEvent, now time.Time) (model.OddsQuote, bool) {
	for _, bk := range ev.Bookmakers {
		for _, mk := range bk.Markets {
			if mk.Key != "h2h" {
				continue
			}
			q := model.OddsQuote{Team1: ev.HomeTeam, Team2: ev.AwayTeam, FetchedAt: now}
			for _, o := range mk.Outcomes {
				switch o.Name {
				case ev.HomeTeam:
					q.OddsTeam1 = o.Price
				case ev.AwayTeam:
					q.OddsTeam2 = o.Price
				case "Draw":
					draw := o.Price
					q.OddsDraw = &draw
				}
			}
			if q.OddsTeam1 > 0 && q.OddsTeam2 > 0 {
				return q, true
			}
		}
	}
	return model.OddsQuote{}, false
}
