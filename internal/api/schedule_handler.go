package api

import (
	"net/http"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ScheduleHandler 调度与统计相关接口
type ScheduleHandler struct {
	sched     *scheduler.Scheduler
	statsRepo interfaces.StatsRepository
	logger    *logrus.Logger
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(sched *scheduler.Scheduler, statsRepo interfaces.StatsRepository, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{sched: sched, statsRepo: statsRepo, logger: logger}
}

// ManualUpdate 手动触发一次全量刷新（同步执行）
// POST /api/schedule/update
func (h *ScheduleHandler) ManualUpdate(c *gin.Context) {
	if err := h.sched.ManualUpdate(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("手动刷新失败")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "刷新完成"})
}

// Info 当前调度配置
// GET /api/schedule/info
func (h *ScheduleHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"schedule": h.sched.Info(),
	})
}

// Stats 站点统计（展示值）
// GET /api/stats
func (h *ScheduleHandler) Stats(c *gin.Context) {
	stats, err := h.statsRepo.Get(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("读取统计失败")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
