package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkordes/exam-tracker/internal/domain"
	"github.com/pkordes/exam-tracker/internal/metrics"
)

// maxResponseBytes caps how much of an admissions response is read.
const maxResponseBytes = 1 << 20

// AdmissionsClient talks to the admissions tracking API. Both endpoints take a
// multipart form with a single "data" field holding {"application":{"id":N}}.
type AdmissionsClient struct {
	http           *http.Client
	applicationURL string
	rejectionURL   string
	metrics        *metrics.Metrics
}

// NewAdmissionsClient constructs an AdmissionsClient. An empty rejectionURL
// makes FetchRejection report "not found" without calling out.
func NewAdmissionsClient(client *http.Client, applicationURL, rejectionURL string, m *metrics.Metrics) *AdmissionsClient {
	return &AdmissionsClient{
		http:           client,
		applicationURL: applicationURL,
		rejectionURL:   rejectionURL,
		metrics:        m,
	}
}

// FetchApplication returns the accepted application with the given numeric
// ID, or (nil, nil) when the API does not know it.
func (c *AdmissionsClient) FetchApplication(ctx context.Context, id string) (*domain.Application, error) {
	body, err := c.post(ctx, "application", c.applicationURL, id)
	if err != nil {
		return nil, fmt.Errorf("upstream.AdmissionsClient.FetchApplication: %w", err)
	}
	if body == nil {
		return nil, nil
	}

	var p applicationPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("upstream.AdmissionsClient.FetchApplication: decode: %w", err)
	}
	if !p.ID.Present() {
		return nil, nil
	}
	app := p.toDomain()
	return &app, nil
}

// FetchRejection returns the rejected application with the given numeric ID,
// or (nil, nil) when there is none or no rejection endpoint is configured.
func (c *AdmissionsClient) FetchRejection(ctx context.Context, id string) (*domain.Rejection, error) {
	if c.rejectionURL == "" {
		return nil, nil
	}
	body, err := c.post(ctx, "rejection", c.rejectionURL, id)
	if err != nil {
		return nil, fmt.Errorf("upstream.AdmissionsClient.FetchRejection: %w", err)
	}
	if body == nil {
		return nil, nil
	}

	var p rejectionPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("upstream.AdmissionsClient.FetchRejection: decode: %w", err)
	}
	if !p.ID.Present() {
		return nil, nil
	}
	rej := p.toDomain()
	return &rej, nil
}

// post sends the tracking form for id to url. A nil body with a nil error
// means the upstream answered 404.
func (c *AdmissionsClient) post(ctx context.Context, endpoint, url, id string) ([]byte, error) {
	form, contentType, err := trackingForm(id)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, form)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := do(ctx, c.http, c.metrics, endpoint, req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	return body, nil
}

// trackingForm encodes the multipart body the admissions API expects.
func trackingForm(id string) (*bytes.Buffer, string, error) {
	payload, err := json.Marshal(map[string]any{
		"application": map[string]any{"id": json.Number(id)},
	})
	if err != nil {
		return nil, "", fmt.Errorf("encode id %q: %w", id, err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("data", string(payload)); err != nil {
		return nil, "", fmt.Errorf("write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
