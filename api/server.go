package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/TahPapeJe/PotSoft/external/gemini"
	"github.com/TahPapeJe/PotSoft/insight"
	"github.com/TahPapeJe/PotSoft/logmodule"
	"github.com/TahPapeJe/PotSoft/metrics"
	"github.com/TahPapeJe/PotSoft/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.PotholeStore

	// External services
	gemini gemini.Client

	// Insight engine with its cache
	insights *insight.Engine
}

// NewServer new instance of server
func NewServer(potholeStore store.PotholeStore, geminiClient gemini.Client, insightTTL time.Duration) *Server {
	if insightTTL <= 0 {
		insightTTL = insight.DefaultTTL
	}

	return &Server{
		store:    potholeStore,
		gemini:   geminiClient,
		insights: insight.NewEngine(geminiClient, potholeStore, insightTTL),
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	// The mobile client is served from anywhere.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", s.welcome)
	r.POST("/analyze", logmodule.Ginrus("Analyze"), s.analyze)

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.GET("/information", s.information)

	apiRoute.POST("/detect-pothole", s.detectPothole)

	reportRoute := apiRoute.Group("/reports")
	{
		reportRoute.GET("", s.listReports)
		reportRoute.POST("", s.createReport)
		reportRoute.PATCH("/:reportID/status", s.updateReportStatus)
	}

	insightRoute := apiRoute.Group("/insights")
	{
		insightRoute.GET("/summary", s.insightSummary)
		insightRoute.GET("/trends", s.insightTrends)
		insightRoute.GET("/recommendations", s.insightRecommendations)
		insightRoute.GET("/jurisdictions", s.insightJurisdictions)
		insightRoute.POST("/clear-cache", s.insightClearCache)
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the PotSoft API",
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"android":        viper.GetStringMap("clients.android"),
			"ios":            viper.GetStringMap("clients.ios"),
			"system_version": "PotSoft 0.1",
			"docs":           viper.GetStringMap("docs"),
		},
	})
}

func (s *Server) healthz(c *gin.Context) {
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
