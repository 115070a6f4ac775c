package api

import (
	"net/http"
	"time"

	"MatchSync/internal/model"
	"MatchSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MatchHandler 提供给前端的比赛查询接口
type MatchHandler struct {
	aggregator *service.MatchAggregator
	logger     *logrus.Logger
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(aggregator *service.MatchAggregator, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{aggregator: aggregator, logger: logger}
}

// matchView 比赛记录 + 派生状态（status按开赛时间算，不落库）
type matchView struct {
	*model.MatchRecord
	Status model.MatchStatus `json:"status"`
}

func toViews(matches []*model.MatchRecord, now time.Time) []matchView {
	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, matchView{MatchRecord: m, Status: m.Status(now)})
	}
	return views
}

// ListToday 今日全项目比赛
// GET /api/matches
// 没有真实数据时返回空对象+success:true，前端渲染"今日无比赛"，不报错。
func (h *MatchHandler) ListToday(c *gin.Context) {
	result, err := h.aggregator.TodayMatches(c.Request.Context())
	if err != nil {
		// 落库失败不影响给前端返回已算出的数据
		h.logger.WithError(err).Error("今日比赛落库失败，仍返回计算结果")
	}

	now := time.Now()
	bySport := make(map[model.Sport][]matchView, len(result))
	for sport, matches := range result {
		bySport[sport] = toViews(matches, now)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"matches": bySport,
	})
}

// BySport 单项目比赛
// GET /api/matches/:sport
func (h *MatchHandler) BySport(c *gin.Context) {
	sport := model.Sport(c.Param("sport"))
	if !sport.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown sport: " + string(sport)})
		return
	}
	matches, err := h.aggregator.MatchesBySport(c.Request.Context(), sport)
	if err != nil {
		h.logger.WithError(err).WithField("sport", sport).Error("单项目比赛落库失败，仍返回计算结果")
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sport":   sport,
		"matches": toViews(matches, time.Now()),
	})
}

// ForceRefresh 绕过缓存强制重算
// POST /api/matches/refresh
func (h *MatchHandler) ForceRefresh(c *gin.Context) {
	result, err := h.aggregator.ForceRefresh(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("强制刷新落库失败，仍返回计算结果")
	}
	now := time.Now()
	bySport := make(map[model.Sport][]matchView, len(result))
	for sport, matches := range result {
		bySport[sport] = toViews(matches, now)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"matches": bySport,
	})
}
