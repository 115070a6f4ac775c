package pandascore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"MatchSync/internal/config"
	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// SourceName 限速与可信度查表键
const SourceName = "pandascore"

// Adapter PandaScore 电竞赛程适配器（电竞第一优先级源，Bearer鉴权）
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

func (a *Adapter) Sports() []model.Sport { return []model.Sport{model.SportEsports} }

// psMatch /matches/upcoming 响应单项
type psMatch struct {
	BeginAt   string `json:"begin_at"`
	Opponents []struct {
		Opponent struct {
			Name string `json:"name"`
		} `json:"opponent"`
	} `json:"opponents"`
	Videogame struct {
		Name string `json:"name"`
	} `json:"videogame"`
	League struct {
		Name string `json:"name"`
	} `json:"league"`
}

func (a *Adapter) FetchMatches(ctx context.Context, sport model.Sport) model.FetchResult {
	if sport != model.SportEsports {
		return model.OKResult(nil)
	}
	url := fmt.Sprintf("%s/matches/upcoming?per_page=20", a.cfg.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.FailedResult(fmt.Errorf("构造请求失败: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+a.cfg.AuthToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return model.FailedResult(fmt.Errorf("请求pandascore失败: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.FailedResult(fmt.Errorf("pandascore返回状态码%d", resp.StatusCode))
	}

	var body []psMatch
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.FailedResult(fmt.Errorf("解析pandascore响应失败: %w", err))
	}

	var raws []model.RawMatch
	for _, m := range body {
		// 双方未定（TBD）的对局跳过
		if len(m.Opponents) != 2 {
			continue
		}
		t1 := m.Opponents[0].Opponent.Name
		t2 := m.Opponents[1].Opponent.Name
		if t1 == "" || t2 == "" {
			continue
		}
		league := m.League.Name
		if m.Videogame.Name != "" {
			league = m.Videogame.Name + " · " + league
		}
		raws = append(raws, model.RawMatch{
			Source:  SourceName,
			Sport:   model.SportEsports,
			Team1:   t1,
			Team2:   t2,
			League:  league,
			RawTime: m.BeginAt,
		})
	}
	return model.OKResult(raws)
}
