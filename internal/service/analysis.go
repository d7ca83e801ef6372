package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oncorisk-client/internal/domain"
	"github.com/oncorisk-client/internal/form"
)

// ExtractionSummary reports what a document extraction contributed to the
// active form session.
type ExtractionSummary struct {
	MergedFields   int                     `json:"merged_fields"`
	Extracted      domain.ExtractionResult `json:"extracted"`
	DoctorNotified bool                    `json:"doctor_notified"`
}

// AnalysisService holds the pipeline collaborators: schema provider,
// prediction and extraction clients, optional care-team notifier. It owns no
// session state; every caller opens its own Flow, so concurrent callers never
// touch each other's records.
type AnalysisService struct {
	logger           *logrus.Logger
	schemas          domain.SchemaProvider
	predictor        domain.PredictionSubmitter
	extractor        domain.DocumentExtractor
	notifier         domain.CareTeamNotifier
	defaultThreshold float64
}

// NewAnalysisService creates the pipeline service. notifier may be nil when
// care-team notification is disabled.
func NewAnalysisService(
	logger *logrus.Logger,
	schemas domain.SchemaProvider,
	predictor domain.PredictionSubmitter,
	extractor domain.DocumentExtractor,
	notifier domain.CareTeamNotifier,
	defaultThreshold float64,
) *AnalysisService {
	return &AnalysisService{
		logger:           logger,
		schemas:          schemas,
		predictor:        predictor,
		extractor:        extractor,
		notifier:         notifier,
		defaultThreshold: defaultThreshold,
	}
}

// DefaultThreshold returns the configured decision threshold.
func (s *AnalysisService) DefaultThreshold() float64 {
	return s.defaultThreshold
}

// Flow runs the pipeline over one form session. Each gateway request and each
// CLI run creates its own Flow; no record or result is shared between two
// flows, and a field write on one flow can never land in another.
type Flow struct {
	svc      *AnalysisService
	sessions *form.Manager
}

// NewFlow opens an isolated session scope over the service's collaborators.
func (s *AnalysisService) NewFlow() *Flow {
	return &Flow{svc: s, sessions: form.NewManager()}
}

// StartSession opens a fresh form session for condition, abandoning any
// previous one in this flow along with its pending async results.
func (f *Flow) StartSession(condition domain.ConditionType) (*form.Session, error) {
	session, err := f.sessions.Start(f.svc.schemas, condition)
	if err != nil {
		return nil, err
	}
	f.svc.logger.WithFields(logrus.Fields{
		"session_id": session.ID(),
		"condition":  condition,
	}).Info("Form session started")
	return session, nil
}

// Session returns the flow's active form session, or nil.
func (f *Flow) Session() *form.Session {
	return f.sessions.Active()
}

// SetField stores a user-entered value on the active session and recomputes
// dependent derived fields.
func (f *Flow) SetField(key string, value any) error {
	return f.sessions.SetField(key, value)
}

// Analyze runs the full pipeline on the active session's record. The session
// token is captured before the network call; if the caller has moved to
// another session by the time the response arrives, the result is discarded
// and domain.ErrStaleSession is returned instead of overwriting the newer
// session's display.
func (f *Flow) Analyze(ctx context.Context, threshold float64) (*domain.PredictionResult, error) {
	session := f.sessions.Active()
	if session == nil {
		return nil, domain.ErrStaleSession
	}
	token := session.ID()
	condition := session.Condition()

	validated, violations := Validate(session.Record(), session.Schema())
	if violations != nil {
		return nil, violations
	}

	req, err := BuildRequest(validated, threshold)
	if err != nil {
		return nil, err
	}

	f.svc.logger.WithFields(logrus.Fields{
		"session_id": token,
		"condition":  condition,
		"threshold":  threshold,
		"features":   len(req.Features),
	}).Info("Submitting prediction request")
	started := time.Now()

	raw, err := f.svc.predictor.Submit(ctx, req)
	if err != nil {
		f.svc.logger.WithError(err).WithField("condition", condition).Warn("Prediction request failed")
		return nil, err
	}

	result, err := Interpret(raw)
	if err != nil {
		return nil, err
	}

	if err := f.sessions.ApplyResult(token, result); err != nil {
		f.svc.logger.WithFields(logrus.Fields{
			"session_id": token,
			"condition":  condition,
		}).Debug("Discarding prediction result for abandoned session")
		return nil, domain.ErrStaleSession
	}

	f.svc.logger.WithFields(logrus.Fields{
		"session_id":  token,
		"condition":   condition,
		"class":       result.Class,
		"risk_level":  result.RiskLevel,
		"probability": result.Probability,
		"elapsed":     time.Since(started),
	}).Info("Prediction completed")

	return result, nil
}

// ExtractDocument uploads a report for the active session's condition, merges
// the recognised fields into the record, recomputes derived values and, when
// the profile names a linked doctor, increments that doctor's pending-reports
// counter. Partial extraction is success; a notification failure does not
// undo a completed merge.
func (f *Flow) ExtractDocument(ctx context.Context, filename string, file io.Reader, profile *domain.UserProfile) (*ExtractionSummary, error) {
	session := f.sessions.Active()
	if session == nil {
		return nil, domain.ErrStaleSession
	}
	token := session.ID()
	condition := session.Condition()

	extracted, err := f.svc.extractor.Extract(ctx, condition, filename, file)
	if err != nil {
		return nil, err
	}

	merged, err := f.sessions.MergeExtraction(token, extracted)
	if err != nil {
		if errors.Is(err, domain.ErrStaleSession) {
			f.svc.logger.WithField("session_id", token).Debug("Discarding extraction for abandoned session")
		}
		return nil, err
	}

	summary := &ExtractionSummary{MergedFields: merged, Extracted: extracted}
	f.svc.logger.WithFields(logrus.Fields{
		"session_id": token,
		"condition":  condition,
		"extracted":  len(extracted),
		"merged":     merged,
	}).Info("Extraction merged into form session")

	if f.svc.notifier != nil && profile != nil && profile.LinkedDoctorID != "" {
		if err := f.svc.notifier.IncrementPendingReports(ctx, profile.LinkedDoctorID); err != nil {
			f.svc.logger.WithError(err).WithField("doctor_id", profile.LinkedDoctorID).
				Warn("Failed to notify linked doctor")
		} else {
			summary.DoctorNotified = true
		}
	}

	return summary, nil
}
