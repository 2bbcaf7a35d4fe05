package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rp-projects/netball-api/internal/domain"
)

const basePath = "/netball-project"

// Client talks to the external scoring service. There is one endpoint
// per skill domain plus the injury classifier, all synchronous.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // video analysis is slow
		},
	}
}

// SkillResult is a normalized scorer response. Metrics is nil for
// scalar domains; otherwise it holds every key of the domain's score
// shape, with sub-metrics the scorer omitted defaulted to zero.
type SkillResult struct {
	AnalyzedVideoURL string
	Overall          float64
	Metrics          map[string]float64
}

type InjuryResult struct {
	Class       string  `json:"class"`
	Probability float64 `json:"probability"`
}

type skillPayload struct {
	FileURL    string          `json:"file_url"`
	Similarity json.RawMessage `json:"similarity"`
}

func (c *Client) AnalyzeSkill(ctx context.Context, spec domain.DomainSpec, correctURL, wrongURL string) (*SkillResult, error) {
	reqBody := map[string]string{
		"correct_s3_link": correctURL,
		"wrong_s3_link":   wrongURL,
	}

	var envelope map[string]json.RawMessage
	if err := c.post(ctx, spec.UpstreamPath, reqBody, &envelope); err != nil {
		return nil, err
	}

	raw, ok := envelope[spec.ResultKey]
	if !ok {
		return nil, fmt.Errorf("%w: response missing %q", domain.ErrUpstream, spec.ResultKey)
	}

	var payload skillPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed result payload: %v", domain.ErrUpstream, err)
	}
	// Persisting an empty URL would leave the record scored but still
	// pending, so a success without one is treated as a failure.
	if payload.FileURL == "" {
		return nil, fmt.Errorf("%w: response missing file_url", domain.ErrUpstream)
	}

	overall, metrics, err := normalizeScore(spec, payload.Similarity)
	if err != nil {
		return nil, err
	}

	return &SkillResult{
		AnalyzedVideoURL: payload.FileURL,
		Overall:          overall,
		Metrics:          metrics,
	}, nil
}

func (c *Client) DetectInjury(ctx context.Context, imageURL string) (*InjuryResult, error) {
	reqBody := map[string]string{"s3_link": imageURL}

	var result InjuryResult
	if err := c.post(ctx, "injury-detection", reqBody, &result); err != nil {
		return nil, err
	}
	if result.Class == "" {
		result.Class = domain.InjuryClassNotDetected
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s%s/%s", c.baseURL, basePath, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned status %d", domain.ErrUpstream, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", domain.ErrUpstream, err)
	}
	return nil
}

// normalizeScore converts the domain-shaped similarity payload into the
// stored score form. Sub-metrics absent from a mapping response default
// to zero, a deliberate leniency carried over from the stored data this
// service is compatible with: an omitted sub-metric is indistinguishable
// from a true zero.
func normalizeScore(spec domain.DomainSpec, raw json.RawMessage) (float64, map[string]float64, error) {
	if spec.Scalar() {
		if len(raw) == 0 {
			return 0, nil, nil
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, nil, fmt.Errorf("%w: expected scalar similarity: %v", domain.ErrUpstream, err)
		}
		return v, nil, nil
	}

	reported := map[string]float64{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &reported); err != nil {
			return 0, nil, fmt.Errorf("%w: expected similarity object: %v", domain.ErrUpstream, err)
		}
	}

	metrics := make(map[string]float64, len(spec.MetricKeys))
	for _, key := range spec.MetricKeys {
		metrics[key] = reported[key]
	}
	return metrics["overall"], metrics, nil
}
