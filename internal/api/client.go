// Package api is the typed gateway to the plant-care backend.
//
// One method per backend capability; each returns a decoded record or one
// of three error classes: *ValidationError (bad local input, no network
// call made), *RequestError (backend unreachable), *APIError (backend
// reachable, non-2xx). Failures are terminal for the triggering action —
// there is no retry, no backoff, and no caching at this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/saessak-labs/planterm/internal/config"
	"github.com/saessak-labs/planterm/internal/logging"
)

// maxErrorBodyBytes bounds how much of an error response we read back.
const maxErrorBodyBytes = 64 * 1024

// Client talks to the plant-care backend.
type Client struct {
	baseURL string
	http    *http.Client
	upload  config.UploadConfig
	log     *logging.Logger
}

// New creates a client against cfg.Server.BaseURL with the configured
// fixed timeout.
func New(cfg *config.Config, log *logging.Logger) *Client {
	return &Client{
		baseURL: cfg.Server.BaseURL,
		http: &http.Client{
			Timeout: cfg.Server.Timeout.Duration(),
		},
		upload: cfg.Upload,
		log:    log.Named("api"),
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ValidateImage checks a local image path against the upload allowlist
// before any network call. Returns *ValidationError on rejection.
func (c *Client) ValidateImage(path string) error {
	if path == "" {
		return &ValidationError{Reason: "no image file selected"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("cannot read image file %s: %v", path, err)}
	}
	if info.IsDir() {
		return &ValidationError{Reason: path + " is a directory, not an image"}
	}
	if !c.upload.AllowedExtension(path) {
		return &ValidationError{Reason: fmt.Sprintf("%s is not an image file (allowed: %v)", filepath.Base(path), c.upload.Extensions)}
	}
	if info.Size() > c.upload.MaxBytes {
		return &ValidationError{Reason: fmt.Sprintf("image is %d bytes, exceeds the %d byte limit", info.Size(), c.upload.MaxBytes)}
	}
	return nil
}

// Health probes GET /health.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.getJSON(ctx, "/health", nil, &out)
	return out, err
}

// AnalyzeAuto uploads an image to POST /api/plant/analyze-auto and
// returns the combined identification, care guide and growth prediction.
func (c *Client) AnalyzeAuto(ctx context.Context, imagePath string) (*AnalyzeResponse, error) {
	if err := c.ValidateImage(imagePath); err != nil {
		return nil, err
	}
	var out AnalyzeResponse
	if err := c.postMultipart(ctx, "/api/plant/analyze-auto", nil, imagePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GrowthInsightOptions parameterizes GrowthInsight. Zero values get the
// backend defaults (monthly unit, 12 periods).
type GrowthInsightOptions struct {
	// ImagePath is optional; without it the backend works from SpeciesHint.
	ImagePath   string
	SpeciesHint string
	PeriodUnit  string // "month" or "week"
	MaxPeriods  int
}

// GrowthInsight calls POST /api/plant/growth-insight.
func (c *Client) GrowthInsight(ctx context.Context, opts GrowthInsightOptions) (*InsightResponse, error) {
	if opts.PeriodUnit == "" {
		opts.PeriodUnit = "month"
	}
	if opts.PeriodUnit != "month" && opts.PeriodUnit != "week" {
		return nil, &ValidationError{Reason: fmt.Sprintf("period unit must be month or week, got %q", opts.PeriodUnit)}
	}
	if opts.MaxPeriods <= 0 {
		opts.MaxPeriods = 12
	}
	if opts.ImagePath != "" {
		if err := c.ValidateImage(opts.ImagePath); err != nil {
			return nil, err
		}
	}

	query := url.Values{}
	query.Set("period_unit", opts.PeriodUnit)
	query.Set("max_periods", strconv.Itoa(opts.MaxPeriods))

	var fields map[string]string
	if opts.SpeciesHint != "" {
		fields = map[string]string{"species_hint": opts.SpeciesHint}
	}

	var out InsightResponse
	if err := c.postMultipart(ctx, "/api/plant/growth-insight", query, opts.ImagePath, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthlyAnalysis calls GET /api/plant/monthly-data-analysis for a plant
// name remembered from a previous identification.
func (c *Client) MonthlyAnalysis(ctx context.Context, plantName string, maxMonths int) (*InsightResponse, error) {
	if plantName == "" {
		return nil, &ValidationError{Reason: "plant name is required for monthly analysis"}
	}
	if maxMonths <= 0 {
		maxMonths = 12
	}

	query := url.Values{}
	query.Set("plant_name", plantName)
	query.Set("max_months", strconv.Itoa(maxMonths))

	var out InsightResponse
	if err := c.getJSON(ctx, "/api/plant/monthly-data-analysis", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DetectDisease uploads an image to POST /api/plant/disease-detect.
func (c *Client) DetectDisease(ctx context.Context, imagePath string) (*DiseaseResponse, error) {
	if err := c.ValidateImage(imagePath); err != nil {
		return nil, err
	}
	var out DiseaseResponse
	if err := c.postMultipart(ctx, "/api/plant/disease-detect", nil, imagePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target, err := c.buildURL(path, query)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

// postMultipart sends a multipart/form-data POST. imagePath is attached
// as field "file" when non-empty; the caller validates it first.
func (c *Client) postMultipart(ctx context.Context, path string, query url.Values, imagePath string, fields map[string]string, out any) error {
	target, err := c.buildURL(path, query)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			return &ValidationError{Reason: fmt.Sprintf("cannot open image file: %v", err)}
		}
		part, err := writer.CreateFormFile("file", filepath.Base(imagePath))
		if err != nil {
			f.Close()
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return fmt.Errorf("failed to read image file: %w", err)
		}
		f.Close()
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

// errorBody is the FastAPI-style error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(req *http.Request, out any) error {
	ctx := req.Context()
	if logging.RequestIDFromContext(ctx) == "" {
		ctx = logging.WithRequestID(ctx, "")
		req = req.WithContext(ctx)
	}

	start := time.Now()
	c.log.Debug(ctx, "backend request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "backend unreachable", zap.Error(err))
		return &RequestError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "backend response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope errorBody
		if json.Unmarshal(raw, &envelope) == nil && envelope.Detail != "" {
			apiErr.Detail = envelope.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
