// Package external contains the HTTP clients for the remote prediction and
// document extraction services, plus the care-team store the pipeline
// notifies after an extraction.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/oncorisk-client/internal/domain"
)

// PredictionClient submits built feature payloads to the remote prediction
// endpoint. The base address is resolved once at startup and injected here;
// the client performs exactly one attempt per call and never retries;
// resubmission is the caller's decision.
type PredictionClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPredictionClient creates a prediction endpoint client from config.
func NewPredictionClient(config domain.PredictionConfig) *PredictionClient {
	rps := config.RateLimit
	if rps <= 0 {
		rps = 5
	}
	return &PredictionClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Submit POSTs the request as JSON to /predict and returns the raw success
// body. Non-2xx answers become ServerError with the body text verbatim;
// network and timeout failures become TransportError.
func (c *PredictionClient) Submit(ctx context.Context, req *domain.PredictionRequest) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewTransportError(err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewServerError(resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
