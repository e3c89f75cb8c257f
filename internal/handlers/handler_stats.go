package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
)

// statsHandler serves the aggregation engine's read-only derivations.
type statsHandler struct {
	statsService portssvc.StatsSvcFacade
}

func newStatsHandler(ss portssvc.StatsSvcFacade) *statsHandler {
	return &statsHandler{statsService: ss}
}

// RegisterStatsRoutes registers routes related to aggregate statistics.
func RegisterStatsRoutes(rg *gin.RouterGroup, statsService portssvc.StatsSvcFacade) {
	h := newStatsHandler(statsService)

	stats := rg.Group("/stats")
	{
		stats.GET("/summary", h.summary)
		stats.GET("/industry", h.byIndustry)
		stats.GET("/town", h.byTown)
		stats.GET("/trend", h.trend)
		stats.GET("/top", h.topN)
	}
}

// statsFilter assembles the optional query filters shared by every stats
// endpoint. The month is optional here: absent means "let the engine pick the
// reference month".
func statsFilter(c *gin.Context) (domain.StatsFilter, error) {
	filter := domain.StatsFilter{
		Industry:    c.Query("industry"),
		Town:        c.Query("town"),
		CompanyName: c.Query("companyName"),
	}
	if raw := c.Query("month"); raw != "" {
		month, err := domain.ParseMonthKey(raw)
		if err != nil {
			return domain.StatsFilter{}, err
		}
		filter.Month = month
	}
	return filter, nil
}

// summary godoc
// @Summary Dashboard summary
// @Description Headline numbers for the reference month, with completion fallback metadata.
// @Tags stats
// @Produce json
// @Param industry query string false "Industry filter"
// @Param town query string false "Town filter"
// @Param companyName query string false "Company name substring"
// @Param month query string false "Pin the reference month (YYYY-MM-01)"
// @Success 200 {object} domain.Summary
// @Security BearerAuth
// @Router /stats/summary [get]
func (h *statsHandler) summary(c *gin.Context) {
	filter, err := statsFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	summary, err := h.statsService.Summarize(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// byIndustry godoc
// @Summary Industry rollup
// @Tags stats
// @Produce json
// @Param month query string false "Pin the month (YYYY-MM-01)"
// @Success 200 {array} domain.IndustryStat
// @Security BearerAuth
// @Router /stats/industry [get]
func (h *statsHandler) byIndustry(c *gin.Context) {
	filter, err := statsFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stats, err := h.statsService.ByIndustry(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// byTown godoc
// @Summary Town rollup
// @Tags stats
// @Produce json
// @Param month query string false "Pin the month (YYYY-MM-01)"
// @Success 200 {array} domain.TownStat
// @Security BearerAuth
// @Router /stats/town [get]
func (h *statsHandler) byTown(c *gin.Context) {
	filter, err := statsFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stats, err := h.statsService.ByTown(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// trend godoc
// @Summary Month-over-month trend series
// @Tags stats
// @Produce json
// @Success 200 {array} domain.TrendPoint
// @Security BearerAuth
// @Router /stats/trend [get]
func (h *statsHandler) trend(c *gin.Context) {
	filter, err := statsFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	series, err := h.statsService.Trend(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// topN godoc
// @Summary Company leaderboard
// @Description Ranks companies by shortage, recruited, turnover or netgrowth.
// @Tags stats
// @Produce json
// @Param metric query string true "Metric" Enums(shortage, recruited, turnover, netgrowth)
// @Param n query int false "Number of entries (default 10)"
// @Success 200 {array} domain.CompanyRanking
// @Failure 400 {object} map[string]string "Unknown metric"
// @Security BearerAuth
// @Router /stats/top [get]
func (h *statsHandler) topN(c *gin.Context) {
	filter, err := statsFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))
	rankings, err := h.statsService.TopN(c.Request.Context(), domain.RankMetric(c.Query("metric")), n, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rankings)
}
