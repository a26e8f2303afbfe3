// Package gemini wraps the Google Generative Language REST API for the two
// call shapes the service needs: vision classification of a single image
// and text generation over an embedded data summary.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/TahPapeJe/PotSoft/metrics"
	"github.com/TahPapeJe/PotSoft/schema"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel    = "gemini-2.5-flash"

	// Insight calls retry rate-limit failures only: up to 3 attempts with
	// attempt*15s backoff. The per-image classification path never retries.
	maxInsightAttempts = 3
	backoffStep        = 15 * time.Second
)

var (
	errEmptyAPIKey  = fmt.Errorf("empty gemini api key")
	errNoCandidates = fmt.Errorf("gemini returned no candidates")
)

const classificationPrompt = "Return ONLY valid JSON. Do not include explanations outside JSON. Use this structure:" +
	"{is_pothole: true, size_category: 'Small', priority_color: 'Green', jurisdiction: 'JKR Perlis', estimated_duration: '4 hours'}" +
	"Jurisdiction is based on latitude and longitude that is given by the user."

const detectionPrompt = `You are an AI computer vision assistant for road maintenance.
Analyze the provided image.
Determine if a pothole is present.
If present, classify the size as "Small", "Medium", or "Large" based on its relative scale to the road/surroundings. If no pothole is present, size should be "None".

Respond strictly in JSON format with the following structure:
{
  "has_pothole": boolean,
  "size": "Small" | "Medium" | "Large" | "None",
  "confidence": float
}`

// Client - gemini operations consumed by the API and insight layers.
type Client interface {
	// AnalyzeImage classifies a single image. It never returns an error;
	// failures are reported through the Success/Error fields so report
	// creation can degrade to defaults.
	AnalyzeImage(ctx context.Context, imageB64, mimeType string, lat, lng float64) schema.AnalysisResponse

	// DetectPothole serves the legacy detection contract and returns the
	// raw model text.
	DetectPothole(ctx context.Context, imageB64, mimeType string) (string, error)

	// GenerateInsight sends a text prompt, retrying rate-limit failures
	// with bounded backoff.
	GenerateInsight(ctx context.Context, prompt string) (string, error)
}

type client struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client

	// sleep is swapped out in tests to avoid real backoff delays.
	sleep func(time.Duration)
}

// New - return a gemini client. Empty endpoint or nil httpClient fall back
// to defaults.
func New(apiKey, endpoint string, httpClient *http.Client) Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &client{
		apiKey:     apiKey,
		endpoint:   endpoint,
		model:      defaultModel,
		httpClient: httpClient,
		sleep:      time.Sleep,
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

// apiError is the error object embedded in non-200 responses.
type apiError struct {
	HTTPStatus int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Status     string `json:"status"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("gemini api error (http %d, %s): %s", e.HTTPStatus, e.Status, e.Message)
}

// rateLimited reports whether an error is a quota/rate-limit failure worth
// retrying on the insight path.
func rateLimited(err error) bool {
	if apiErr, ok := err.(*apiError); ok {
		if apiErr.HTTPStatus == http.StatusTooManyRequests {
			return true
		}
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "resource_exhausted") ||
		strings.Contains(s, "quota")
}

// generate issues one generateContent call and extracts the first
// candidate's text.
func (c *client) generate(ctx context.Context, parts []part) (string, error) {
	if c.apiKey == "" {
		return "", errEmptyAPIKey
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	metrics.GeminiRequestsTotal.Inc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	d, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var r generateResponse
	if err := json.Unmarshal(d, &r); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := r.Error
		if apiErr == nil {
			apiErr = &apiError{Message: strings.TrimSpace(string(d))}
		}
		apiErr.HTTPStatus = resp.StatusCode
		return "", apiErr
	}

	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", errNoCandidates
	}

	return r.Candidates[0].Content.Parts[0].Text, nil
}

func (c *client) AnalyzeImage(ctx context.Context, imageB64, mimeType string, lat, lng float64) schema.AnalysisResponse {
	prompt := classificationPrompt
	if lat != 0 || lng != 0 {
		prompt = fmt.Sprintf("%s\nUser location: latitude=%f, longitude=%f.", prompt, lat, lng)
	}

	text, err := c.generate(ctx, []part{
		{Text: prompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: imageB64}},
	})
	if err != nil {
		log.WithField("prefix", "gemini").Warnf("image analysis failed: %s", err)
		return schema.AnalysisResponse{Success: false, Error: err.Error()}
	}
	if text == "" {
		return schema.AnalysisResponse{Success: false, Error: "could not analyze the image"}
	}

	return schema.AnalysisResponse{Success: true, Analysis: text}
}

func (c *client) DetectPothole(ctx context.Context, imageB64, mimeType string) (string, error) {
	return c.generate(ctx, []part{
		{Text: detectionPrompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: imageB64}},
	})
}

func (c *client) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	attempt := 1
	for {
		text, err := c.generate(ctx, []part{{Text: prompt}})
		if err == nil {
			return text, nil
		}

		if !rateLimited(err) || attempt == maxInsightAttempts {
			return "", err
		}

		wait := time.Duration(attempt) * backoffStep
		log.WithField("prefix", "gemini").Warnf("rate limited, retrying in %s: %s", wait, err)
		metrics.GeminiRetriesTotal.Inc()
		c.sleep(wait)
		attempt++
	}
}
