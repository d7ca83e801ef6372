// Package form holds the mutable per-condition feature records a user fills
// in before submission, and the session that owns them. Each condition type
// has its own concrete record type; raw values are strings for numeric, enum,
// text and derived fields and native booleans for binary flags.
package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oncorisk-client/internal/domain"
)

// Record is the common surface over the concrete per-condition records. Keys
// are the schema field keys; values are string or bool depending on the
// field kind. Unknown keys are rejected, never stored.
type Record interface {
	Condition() domain.ConditionType

	// Value returns the raw value for key. The second return is false for
	// keys the record does not declare.
	Value(key string) (any, bool)

	// SetValue stores a raw value for key, coercing numbers and boolean
	// spellings from extraction payloads into the record's representation.
	SetValue(key string, v any) error
}

// New creates the record for condition with the schema's enum/text defaults
// applied, mirroring a freshly opened form.
func New(s *domain.FeatureSchema) (Record, error) {
	var r Record
	switch s.Condition {
	case domain.ConditionBreast:
		r = &BreastRecord{}
	case domain.ConditionLung:
		r = &LungRecord{}
	case domain.ConditionColorectal:
		r = &ColorectalRecord{}
	default:
		return nil, domain.ErrUnknownCondition
	}
	for _, f := range s.Fields {
		if f.Default != "" && (f.Kind == domain.FieldEnum || f.Kind == domain.FieldText) {
			if err := r.SetValue(f.Key, f.Default); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// coerceString normalises a raw input or extraction value into the record's
// string representation. Extraction payloads carry numbers as float64.
func coerceString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("cannot use %T as a text value", v)
	}
}

// coerceBool accepts native booleans plus the categorical spellings the
// extraction provider and the wire format use.
func coerceBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true", "1":
			return true, nil
		case "no", "false", "0", "":
			return false, nil
		}
		return false, fmt.Errorf("cannot interpret %q as a boolean value", t)
	default:
		return false, fmt.Errorf("cannot use %T as a boolean value", v)
	}
}

func setString(field *string, v any) error {
	s, err := coerceString(v)
	if err != nil {
		return err
	}
	*field = s
	return nil
}

func setBool(field *bool, v any) error {
	b, err := coerceBool(v)
	if err != nil {
		return err
	}
	*field = b
	return nil
}
