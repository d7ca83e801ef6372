package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/oncorisk-client/internal/domain"
)

// ExtractionClient uploads report documents to the server-side extraction
// endpoint and returns the provider's key/value candidates. Failure modes
// mirror the prediction client: ServerError on non-2xx, TransportError on
// network failure. A response with any status other than "success" is an
// extraction failure even on HTTP 200.
type ExtractionClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewExtractionClient creates an extraction endpoint client from config.
func NewExtractionClient(config domain.ExtractionConfig) *ExtractionClient {
	rps := config.RateLimit
	if rps <= 0 {
		rps = 2
	}
	return &ExtractionClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// extractionResponse mirrors the extraction endpoint's body.
type extractionResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// Extract POSTs the file and the condition tag as multipart form data to
// /extract-pdf. Whatever subset of fields the provider recognised comes back;
// partial extraction is success.
func (c *ExtractionClient) Extract(ctx context.Context, condition domain.ConditionType, filename string, file io.Reader) (domain.ExtractionResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewTransportError(err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("type", condition.String()); err != nil {
		return nil, fmt.Errorf("failed to write type field: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract-pdf", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

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

	var parsed extractionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("%w: provider status %q", domain.ErrExtractionFailed, parsed.Status)
	}

	return domain.ExtractionResult(parsed.Data), nil
}
