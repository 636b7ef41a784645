package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"upwork-analytics/errors"
	"upwork-analytics/models"
	"upwork-analytics/services"
	"upwork-analytics/storage"
	"upwork-analytics/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
)

const (
	dashboardTitle = "Upwork Job Market Analysis Dashboard"
	sourceCaption  = "Data Source: Upwork Job Postings Dataset 2024 (50K Records) from Kaggle"
)

// DatasetProvider serves the cached dataset and rebuilds it on demand
type DatasetProvider interface {
	Dataset(ctx context.Context) (*models.Dataset, error)
	Reload(ctx context.Context) (*models.Dataset, error)
}

// DashboardHandler serves the dashboard page, its charts and the JSON API
type DashboardHandler struct {
	provider  DatasetProvider
	exporter  storage.PostingExporter
	limiter   *utils.RateLimiter
	logger    *utils.Logger
	topSkills int
}

// NewDashboardHandler creates the handler with its dependencies
func NewDashboardHandler(provider DatasetProvider, exporter storage.PostingExporter, limiter *utils.RateLimiter, logger *utils.Logger, topSkills int) *DashboardHandler {
	return &DashboardHandler{
		provider:  provider,
		exporter:  exporter,
		limiter:   limiter,
		logger:    logger,
		topSkills: topSkills,
	}
}

type metricCard struct {
	Label string
	Value string
}

type dashboardView struct {
	Title    string
	Metrics  []metricCard
	Caption  string
	Source   string
	LoadedAt string
}

// Dashboard is GET /
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	r := ds.Report
	c.HTML(http.StatusOK, "dashboard.html", dashboardView{
		Title: dashboardTitle,
		Metrics: []metricCard{
			{"Number of Jobs", services.FormatCount(r.TotalJobs)},
			{"Avg Hourly Rate", services.FormatMoney(r.AvgHourlyRate, "/hr")},
			{"Avg Fixed Price", services.FormatMoney(r.AvgFixedPrice, "")},
			{"Avg Est. Total Pay", services.FormatMoney(r.AvgEstimatedPay, "")},
		},
		Caption:  sourceCaption,
		Source:   ds.SourcePath,
		LoadedAt: ds.LoadedAt.Format("2006-01-02 15:04:05"),
	})
}

// PopularityChart is GET /charts/skills/popularity
func (h *DashboardHandler) PopularityChart(c *gin.Context) {
	h.renderChart(c, services.NewPopularityChart)
}

// PayChart is GET /charts/skills/pay
func (h *DashboardHandler) PayChart(c *gin.Context) {
	h.renderChart(c, services.NewPayChart)
}

func (h *DashboardHandler) renderChart(c *gin.Context, build func([]models.SkillAggregate) *charts.Bar) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := build(ds.Report.TopSkills).Render(&buf); err != nil {
		h.logger.Error("Failed to render chart: %v", err)
		respondError(c, http.StatusInternalServerError, errors.Internal("rendering chart", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Metrics is GET /api/v1/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ds.Report)
}

// Skills is GET /api/v1/skills?limit=N; limit=0 lists every skill
func (h *DashboardHandler) Skills(c *gin.Context) {
	limit := h.topSkills
	if raw, present := c.GetQuery("limit"); present {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid limit %q", raw)})
			return
		}
		limit = n
	}

	ds, ok := h.dataset(c)
	if !ok {
		return
	}
	skills := services.TopSkills(ds.Skills, limit)
	c.JSON(http.StatusOK, gin.H{
		"total":  len(ds.Skills),
		"skills": skills,
	})
}

// Posting is GET /api/v1/postings/:id
func (h *DashboardHandler) Posting(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	p, found := ds.Posting(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "posting not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ExportPostings is GET /api/v1/export/postings.csv
func (h *DashboardHandler) ExportPostings(c *gin.Context) {
	ds, ok := h.dataset(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.WritePostings(&buf, ds.Postings); err != nil {
		h.logger.Error("Failed to export postings: %v", err)
		respondError(c, http.StatusInternalServerError, errors.Internal("exporting postings", err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="postings-enriched.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Reload is POST /api/v1/dataset/reload
func (h *DashboardHandler) Reload(c *gin.Context) {
	if !h.limiter.Allow() {
		wait := h.limiter.RetryAfter()
		c.Header("Retry-After", strconv.Itoa(int(wait.Seconds()+0.999)))
		respondError(c, http.StatusTooManyRequests,
			errors.RateLimit(fmt.Sprintf("dataset reload allowed again in %v", wait.Round(time.Millisecond)), nil))
		return
	}

	ds, err := h.provider.Reload(c.Request.Context())
	if err != nil {
		h.respondLoadError(c, err)
		return
	}

	h.logger.Info("Dataset reloaded: %d postings, %d skills", len(ds.Postings), len(ds.Skills))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"postings":  len(ds.Postings),
		"skills":    len(ds.Skills),
		"loaded_at": ds.LoadedAt,
	})
}

// HealthCheck is GET /api/v1/health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *DashboardHandler) dataset(c *gin.Context) (*models.Dataset, bool) {
	ds, err := h.provider.Dataset(c.Request.Context())
	if err != nil {
		h.respondLoadError(c, err)
		return nil, false
	}
	return ds, true
}

func (h *DashboardHandler) respondLoadError(c *gin.Context, err error) {
	h.logger.Error("Dataset unavailable: %v", err)
	respondError(c, http.StatusInternalServerError, err)
}

// respondError writes {"error": <type>, "cause": <message>}
func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"error": string(errors.TypeOf(err)),
		"cause": err.Error(),
	})
}
