// Package service implements the prediction pipeline: schema validation,
// wire-payload building, response interpretation and the orchestrating
// analysis service.
package service

import (
	"math"
	"strconv"

	"github.com/oncorisk-client/internal/domain"
	"github.com/oncorisk-client/internal/form"
)

// ValidatedRecord is a feature record that has passed every validator check
// for its schema. It is produced only by Validate and consumed only by
// BuildRequest; nothing reaches the wire without going through it.
type ValidatedRecord struct {
	schema *domain.FeatureSchema
	record form.Record
}

// Schema returns the schema the record was validated against.
func (v *ValidatedRecord) Schema() *domain.FeatureSchema {
	return v.schema
}

// Validate checks a raw record against its schema, in schema field order.
// There is no partial success: either every field passes and a
// ValidatedRecord is returned, or the full list of violations comes back so
// the caller can surface all problems at once.
//
// Boolean and derived fields are exempt from presence checks; derived values
// are always recomputed, never user-required.
func Validate(record form.Record, s *domain.FeatureSchema) (*ValidatedRecord, domain.ValidationErrors) {
	var violations domain.ValidationErrors

	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Kind == domain.FieldBoolean || f.Kind == domain.FieldDerived {
			continue
		}

		raw, _ := record.Value(f.Key)
		text, _ := raw.(string)

		if text == "" {
			if f.Required {
				violations = append(violations, domain.NewMissingFieldError(f.Key))
			}
			continue
		}

		switch f.Kind {
		case domain.FieldNumeric:
			v, err := strconv.ParseFloat(text, 64)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				violations = append(violations, domain.NewNotNumericError(f.Key))
			}
		case domain.FieldEnum:
			if !f.AllowsEnum(text) {
				violations = append(violations, domain.NewInvalidEnumError(f.Key, f.EnumValues))
			}
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return &ValidatedRecord{schema: s, record: record}, nil
}
