package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TahPapeJe/PotSoft/external/gemini"
)

// analyze uploads an image and returns the raw vision analysis without
// creating a report.
func (s *Server) analyze(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if !isImageUpload(header) {
		abortWithEncoding(c, http.StatusBadRequest, errorNotAnImage)
		return
	}

	imageB64, err := readUploadBase64(header)
	if shouldInterupt(err, c) {
		return
	}

	result := s.gemini.AnalyzeImage(c.Request.Context(), imageB64, uploadMimeType(header), 0, 0)
	if !result.Success {
		abortWithEncoding(c, http.StatusInternalServerError, errorAnalysisFailed)
		return
	}

	c.JSON(http.StatusOK, result)
}

// detectPothole serves the legacy detection contract with its own schema
// (has_pothole / size / confidence). Unlike report creation, a parse
// failure here is surfaced to the caller.
func (s *Server) detectPothole(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		abortWithEncoding(c, http.StatusBadRequest, errorNotAnImage)
		return
	}

	imageB64, err := readUploadBase64(header)
	if shouldInterupt(err, c) {
		return
	}

	raw, err := s.gemini.DetectPothole(c.Request.Context(), imageB64, header.Header.Get("Content-Type"))
	if shouldInterupt(err, c) {
		return
	}

	result, err := gemini.ParseDetection(raw)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, result)
}
