package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TahPapeJe/PotSoft/insight"
)

func (s *Server) insightSummary(c *gin.Context) {
	s.serveInsight(c, s.insights.Summary)
}

func (s *Server) insightTrends(c *gin.Context) {
	s.serveInsight(c, s.insights.Trends)
}

func (s *Server) insightRecommendations(c *gin.Context) {
	s.serveInsight(c, s.insights.Recommendations)
}

func (s *Server) insightJurisdictions(c *gin.Context) {
	s.serveInsight(c, s.insights.JurisdictionScores)
}

func (s *Server) serveInsight(c *gin.Context, generate func(context.Context) (insight.Result, error)) {
	result, err := generate(c.Request.Context())
	if err != nil {
		log.Errorf("insight generation failed: %s", err)
		abortWithEncoding(c, http.StatusInternalServerError, errorInsightFailed, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// insightClearCache forces the next retrieval of every insight kind to
// re-query the model.
func (s *Server) insightClearCache(c *gin.Context) {
	s.insights.ClearCache()
	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}
