package form

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oncorisk-client/internal/domain"
	"github.com/oncorisk-client/internal/schema"
)

// Session owns one in-progress feature record for a single condition type.
// The record is mutated only by user edits and extraction merges routed
// through the owning Manager; it is discarded when the user switches
// condition or leaves the flow.
type Session struct {
	id     uuid.UUID
	schema *domain.FeatureSchema
	record Record
	result *domain.PredictionResult
}

// ID returns the session token. Async work captures it before suspending and
// presents it again when the result arrives; a mismatch means the result is
// stale and must be discarded.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Condition returns the session's condition tag.
func (s *Session) Condition() domain.ConditionType {
	return s.schema.Condition
}

// Schema returns the active feature schema.
func (s *Session) Schema() *domain.FeatureSchema {
	return s.schema
}

// Record returns the session's feature record.
func (s *Session) Record() Record {
	return s.record
}

// Result returns the last applied prediction result, if any.
func (s *Session) Result() *domain.PredictionResult {
	return s.result
}

// Manager tracks the single active form session. Starting a session for a new
// condition abandons the previous one; results and extraction merges carrying
// an abandoned session's token are rejected with domain.ErrStaleSession so
// they can never mutate the newer session's record.
type Manager struct {
	mu     sync.Mutex
	active *Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{}
}

// Start opens a fresh session for condition, replacing any active one.
func (m *Manager) Start(provider domain.SchemaProvider, condition domain.ConditionType) (*Session, error) {
	s, err := provider.Get(condition)
	if err != nil {
		return nil, err
	}
	record, err := New(s)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = &Session{id: uuid.New(), schema: s, record: record}
	return m.active, nil
}

// Active returns the current session, or nil when none has been started.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// SetField stores a user-entered value on the active session's record and
// recomputes any derived fields that depend on it.
func (m *Manager) SetField(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return domain.ErrStaleSession
	}
	if err := m.active.record.SetValue(key, value); err != nil {
		return err
	}
	RecomputeDerived(m.active.schema, m.active.record)
	return nil
}

// MergeExtraction copies an extraction result into the session identified by
// token. Only keys the active schema recognises (directly or through the
// alias table) are merged; everything else is dropped. Partial extraction is
// success. Returns the number of fields merged.
func (m *Manager) MergeExtraction(token uuid.UUID, extracted domain.ExtractionResult) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.id != token {
		return 0, domain.ErrStaleSession
	}

	merged := 0
	for providerKey, value := range extracted {
		if emptyValue(value) {
			// The provider looked for the field but read nothing; an empty
			// value never overwrites what the user already entered.
			continue
		}
		key, ok := schema.ResolveExtractionKey(m.active.schema, providerKey)
		if !ok {
			continue
		}
		if spec, ok := m.active.schema.Field(key); ok && spec.Kind == domain.FieldDerived {
			// Derived values are recomputed, never copied from a document.
			continue
		}
		if err := m.active.record.SetValue(key, value); err != nil {
			// A value the record cannot represent is skipped, not fatal.
			continue
		}
		merged++
	}

	RecomputeDerived(m.active.schema, m.active.record)
	return merged, nil
}

// ApplyResult attaches a prediction result to the session identified by
// token. A stale token means the user has moved on; the result is discarded.
func (m *Manager) ApplyResult(token uuid.UUID, result *domain.PredictionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.id != token {
		return domain.ErrStaleSession
	}
	m.active.result = result
	return nil
}

// emptyValue reports whether an extraction value carries no content.
func emptyValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// RecomputeDerived refreshes every derived field from its current source
// values. Unparseable or empty sources count as zero, matching the form's
// live behaviour while the user is still typing.
func RecomputeDerived(s *domain.FeatureSchema, r Record) {
	for _, f := range s.Fields {
		if f.Kind != domain.FieldDerived || f.Derive == nil {
			continue
		}
		sources := make(map[string]float64, len(f.DerivedFrom))
		for _, src := range f.DerivedFrom {
			raw, _ := r.Value(src)
			text, _ := raw.(string)
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				v = 0
			}
			sources[src] = v
		}
		derived := f.Derive(sources)
		_ = r.SetValue(f.Key, strconv.FormatFloat(derived, 'f', -1, 64))
	}
}
