package api

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TahPapeJe/PotSoft/external/gemini"
	"github.com/TahPapeJe/PotSoft/geo"
	"github.com/TahPapeJe/PotSoft/metrics"
	"github.com/TahPapeJe/PotSoft/schema"
	"github.com/TahPapeJe/PotSoft/store"
)

// allowedImageExtensions accepts uploads whose declared content type is not
// an image type but whose filename clearly is one.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".heic": true,
	".avif": true,
}

func isImageUpload(header *multipart.FileHeader) bool {
	contentType := header.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(header.Filename))
	return strings.HasPrefix(contentType, "image/") || allowedImageExtensions[ext]
}

// uploadMimeType returns the declared image content type, falling back to a
// type derived from the filename extension.
func uploadMimeType(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") {
		return contentType
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), "."); ext != "" {
		return "image/" + ext
	}
	return "image/jpeg"
}

func readUploadBase64(header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(contents), nil
}

func (s *Server) listReports(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListReports())
}

// createReport accepts image + GPS coords, classifies the image, resolves
// the jurisdiction from coordinates and stores the merged record. A failed
// or unparseable classification degrades to defaults; the report is always
// created.
func (s *Server) createReport(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.PostForm("lat"), 64)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	lng, err := strconv.ParseFloat(c.PostForm("long"), 64)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	header, err := c.FormFile("image")
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
	mimeType := uploadMimeType(header)

	analysis := s.gemini.AnalyzeImage(c.Request.Context(), imageB64, mimeType, lat, lng)

	var classification schema.Classification
	if analysis.Success && analysis.Analysis != "" {
		classification = gemini.ParseClassification(analysis.Analysis)
	} else {
		// Still create the report with defaults when the model fails.
		classification = schema.DefaultClassification()
		metrics.ClassificationFallbacksTotal.Inc()
		log.Warnf("classification failed, using defaults: %s", analysis.Error)
	}

	// Coordinate resolution always wins over the model's jurisdiction guess.
	classification.Jurisdiction = geo.Resolve(lat, lng)

	now := time.Now().UTC().Format(time.RFC3339)
	report := schema.Report{
		ID:                store.NextID(),
		UserLat:           lat,
		UserLong:          lng,
		ImageFile:         fmt.Sprintf("data:%s;base64,%s", mimeType, imageB64),
		Timestamp:         now,
		IsPothole:         classification.IsPothole,
		SizeCategory:      classification.SizeCategory,
		PriorityColor:     classification.PriorityColor,
		Jurisdiction:      classification.Jurisdiction,
		EstimatedDuration: classification.EstimatedDuration,
		Status:            schema.StatusAnalyzed,
		StatusHistory: []schema.StatusHistoryEntry{
			{Status: schema.StatusAnalyzed, At: now},
		},
	}

	s.store.AddReport(report)
	metrics.ReportsCreatedTotal.Inc()

	c.JSON(http.StatusCreated, report)
}

func (s *Server) updateReportStatus(c *gin.Context) {
	reportID := c.Param("reportID")

	var params struct {
		Status string `json:"status"`
	}
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	status := schema.ReportStatus(params.Status)
	if !status.Valid() {
		abortWithEncoding(c, http.StatusUnprocessableEntity, errorInvalidStatus)
		return
	}

	report, err := s.store.UpdateStatus(reportID, status, time.Now().UTC().Format(time.RFC3339))
	if err == store.ErrReportNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorReportNotFound)
		return
	}
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, report)
}
