package domain

import (
	"context"
	"encoding/json"
	"io"
)

// SchemaProvider resolves a condition tag to its feature schema.
type SchemaProvider interface {
	// Get returns the schema for condition, or ErrUnknownCondition.
	Get(condition ConditionType) (*FeatureSchema, error)
}

// PredictionSubmitter performs the single POST to the remote prediction
// endpoint. It returns the raw response body on 2xx; interpretation of the
// body is the result interpreter's concern. At most one attempt per call.
type PredictionSubmitter interface {
	Submit(ctx context.Context, req *PredictionRequest) (json.RawMessage, error)
}

// DocumentExtractor uploads a report file plus the condition tag to the
// extraction endpoint and returns whatever key/value pairs the provider
// recognised. Partial extraction is success, not error.
type DocumentExtractor interface {
	Extract(ctx context.Context, condition ConditionType, filename string, file io.Reader) (ExtractionResult, error)
}

// CareTeamNotifier increments a linked doctor's pending-reports counter after
// an extraction merge completes.
type CareTeamNotifier interface {
	IncrementPendingReports(ctx context.Context, doctorID string) error
}

// ProfileStore reads user profile records from the external document store.
type ProfileStore interface {
	GetProfile(ctx context.Context, uid string) (*UserProfile, error)
}
