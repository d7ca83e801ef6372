// Package domain contains the core entities for the clinical risk prediction
// pipeline: condition tags, feature schemas, wire payloads and results.
package domain

// ConditionType selects which clinical feature schema and request-building
// rules apply. The tag doubles as the remote service's model_name.
type ConditionType string

const (
	ConditionBreast     ConditionType = "breast"
	ConditionLung       ConditionType = "lung"
	ConditionColorectal ConditionType = "colorectal"
)

// String returns the wire representation of the condition tag.
func (c ConditionType) String() string {
	return string(c)
}

// FieldKind describes how a schema field is entered, validated and encoded.
type FieldKind string

const (
	FieldNumeric FieldKind = "numeric"
	FieldEnum    FieldKind = "enum"
	FieldBoolean FieldKind = "boolean"
	FieldText    FieldKind = "text"
	// FieldDerived values are computed from other numeric fields and never
	// entered directly. They are exempt from presence validation and always
	// recomputed at build time.
	FieldDerived FieldKind = "derived"
)

// DeriveFunc computes a derived field value from its source field values.
type DeriveFunc func(sources map[string]float64) float64

// FieldSpec describes one feature of a condition schema. Key is the exact
// wire key the remote model is trained on; keys containing spaces, units or
// parentheses (e.g. "Vitamin C (mg)") must be passed through verbatim.
type FieldSpec struct {
	Key        string    `json:"key"`
	Kind       FieldKind `json:"kind"`
	Required   bool      `json:"required"`
	EnumValues []string  `json:"enum_values,omitempty"`
	// Default is substituted at build time for enum/text fields left empty
	// (e.g. unspecified ethnicity becomes "Other").
	Default     string     `json:"default,omitempty"`
	Group       string     `json:"group,omitempty"`
	DerivedFrom []string   `json:"derived_from,omitempty"`
	Derive      DeriveFunc `json:"-"`
}

// AllowsEnum reports whether value is a member of the declared enum set.
func (f *FieldSpec) AllowsEnum(value string) bool {
	for _, v := range f.EnumValues {
		if v == value {
			return true
		}
	}
	return false
}

// FeatureSchema is the ordered field set for one condition type. Schemas are
// data, defined once at process start, and never mutated afterwards.
type FeatureSchema struct {
	Condition ConditionType
	Fields    []FieldSpec

	index map[string]int
}

// NewFeatureSchema builds a schema and its key index from an ordered field list.
func NewFeatureSchema(condition ConditionType, fields []FieldSpec) *FeatureSchema {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Key] = i
	}
	return &FeatureSchema{Condition: condition, Fields: fields, index: index}
}

// Field returns the spec for key, if the schema declares it.
func (s *FeatureSchema) Field(key string) (*FieldSpec, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return &s.Fields[i], true
}

// Keys returns the field keys in schema order.
func (s *FeatureSchema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// PredictionRequest is the exact payload the remote prediction service
// accepts. Feature values are numbers for numeric and derived fields and
// canonical strings for everything else; booleans are never sent natively.
// Immutable once built.
type PredictionRequest struct {
	ModelName ConditionType  `json:"model_name"`
	Features  map[string]any `json:"features"`
	Threshold float64        `json:"threshold"`
}

// PredictionClass is the binary outcome returned by the classifier.
type PredictionClass string

const (
	ClassPositive PredictionClass = "positive"
	ClassNegative PredictionClass = "negative"
)

// RiskLevel is the classifier's risk tier.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// RiskDisplay is the presentation mapping for a risk tier.
type RiskDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// DisplayForRisk maps the three risk tiers to their display label and colour.
// It is total over valid RiskLevel values; the interpreter rejects anything
// else as a malformed response before this is consulted.
func DisplayForRisk(level RiskLevel) RiskDisplay {
	switch level {
	case RiskHigh:
		return RiskDisplay{Label: "High Risk", Color: "#DC2626"}
	case RiskMedium:
		return RiskDisplay{Label: "Medium Risk", Color: "#F59E0B"}
	default:
		return RiskDisplay{Label: "Low Risk", Color: "#16A34A"}
	}
}

// PredictionResult is the interpreted, display-ready classification. It lives
// only for the current form session and is discarded on the next submission
// or when the caller navigates away.
type PredictionResult struct {
	RequestID        string          `json:"request_id"`
	Model            string          `json:"model"`
	Class            PredictionClass `json:"class"`
	Probability      float64         `json:"probability"`
	RiskLevel        RiskLevel       `json:"risk_level"`
	ThresholdUsed    float64         `json:"threshold_used"`
	ProcessingTimeMs float64         `json:"processing_time_ms,omitempty"`
	Display          RiskDisplay     `json:"display"`
	ReceivedFeatures map[string]any  `json:"received_features,omitempty"`
}

// ExtractionResult holds the key/value pairs a server-side document extraction
// returned for one uploaded report. Completeness is unknown; values arrive as
// strings, numbers or booleans in the provider's own vocabulary.
type ExtractionResult map[string]any

// UserProfile is the slice of the external document store's profile record
// this pipeline reads. LinkedDoctorID identifies the collaborator to notify
// when an extraction completes.
type UserProfile struct {
	UID            string `json:"uid"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	Role           string `json:"role"`
	LinkedDoctorID string `json:"linked_doctor_id,omitempty"`
}
