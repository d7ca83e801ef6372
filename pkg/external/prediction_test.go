package external

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncorisk-client/internal/domain"
)

func testRequest() *domain.PredictionRequest {
	return &domain.PredictionRequest{
		ModelName: domain.ConditionLung,
		Features: map[string]any{
			"age":            69.0,
			"family_history": "Yes",
		},
		Threshold: 0.3,
	}
}

func TestPredictionClient_Submit(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"request_id": "req-1", "prediction": {"class": "positive"}}`))
	}))
	defer server.Close()

	client := NewPredictionClient(domain.PredictionConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})

	raw, err := client.Submit(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "/predict", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	// The raw body comes back untouched for the interpreter.
	assert.JSONEq(t, `{"request_id": "req-1", "prediction": {"class": "positive"}}`, string(raw))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, "lung", sent["model_name"])
	assert.Equal(t, 0.3, sent["threshold"])
	features, ok := sent["features"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 69.0, features["age"])
	assert.Equal(t, "Yes", features["family_history"])
}

func TestPredictionClient_Submit_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "model not loaded"}`))
	}))
	defer server.Close()

	client := NewPredictionClient(domain.PredictionConfig{BaseURL: server.URL, Timeout: 5 * time.Second})

	raw, err := client.Submit(context.Background(), testRequest())
	assert.Nil(t, raw)

	var serverErr *domain.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	// The server's error text is preserved verbatim.
	assert.Equal(t, `{"detail": "model not loaded"}`, serverErr.Body)
}

func TestPredictionClient_Submit_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // nothing listens anymore

	client := NewPredictionClient(domain.PredictionConfig{BaseURL: server.URL, Timeout: time.Second})

	raw, err := client.Submit(context.Background(), testRequest())
	assert.Nil(t, raw)

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotNil(t, transportErr.Cause)
}

func TestPredictionClient_Submit_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read; otherwise
		// it never notices the client disconnect and r.Context() is never
		// cancelled, deadlocking the deferred server.Close.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewPredictionClient(domain.PredictionConfig{BaseURL: server.URL, Timeout: 30 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Submit(ctx, testRequest())
	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestPredictionClient_TrimsTrailingSlash(t *testing.T) {
	client := NewPredictionClient(domain.PredictionConfig{BaseURL: "http://localhost:8000/"})
	assert.Equal(t, "http://localhost:8000", client.baseURL)
}
