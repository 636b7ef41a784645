package handlers

import (
	"time"

	"upwork-analytics/utils"
	"upwork-analytics/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every dashboard and API route
func NewRouter(h *DashboardHandler, logger *utils.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.SetHTMLTemplate(web.Templates())

	r.GET("/", h.Dashboard)
	r.GET("/charts/skills/popularity", h.PopularityChart)
	r.GET("/charts/skills/pay", h.PayChart)

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	api := r.Group("/api/v1")
	api.Use(cors.New(config))
	{
		api.GET("/health", HealthCheck)
		api.GET("/metrics", h.Metrics)
		api.GET("/skills", h.Skills)
		api.GET("/postings/:id", h.Posting)
		api.GET("/export/postings.csv", h.ExportPostings)
		api.POST("/dataset/reload", h.Reload)
	}

	return r
}

func requestLogger(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
