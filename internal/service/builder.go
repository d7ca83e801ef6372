package service

import (
	"math"
	"strconv"

	"github.com/oncorisk-client/internal/domain"
)

// BuildRequest transforms a validated record into the exact wire payload the
// remote classifier expects:
//
//   - numeric fields are emitted as numbers, never strings;
//   - boolean flags are re-encoded as the categorical strings "Yes"/"No";
//   - enum and text fields pass through as their canonical label, with the
//     schema default substituted when empty;
//   - field keys are emitted verbatim, including embedded spaces and units;
//     the remote contract is keyed on the literal strings;
//   - derived fields are recomputed here from their source fields, so a stale
//     stored value can never reach the wire.
//
// A threshold outside [0,1] is a build error, not something to clamp.
func BuildRequest(v *ValidatedRecord, threshold float64) (*domain.PredictionRequest, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, &domain.ThresholdError{Value: threshold}
	}

	features := make(map[string]any, len(v.schema.Fields))
	for i := range v.schema.Fields {
		f := &v.schema.Fields[i]
		raw, _ := v.record.Value(f.Key)

		switch f.Kind {
		case domain.FieldNumeric:
			text, _ := raw.(string)
			// Validation guarantees required numerics parse; optional ones
			// left empty default to zero, as the remote preprocessing does.
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				n = 0
			}
			features[f.Key] = n

		case domain.FieldDerived:
			features[f.Key] = deriveValue(v, f)

		case domain.FieldBoolean:
			b, _ := raw.(bool)
			if b {
				features[f.Key] = "Yes"
			} else {
				features[f.Key] = "No"
			}

		case domain.FieldEnum, domain.FieldText:
			text, _ := raw.(string)
			if text == "" {
				text = f.Default
			}
			features[f.Key] = text
		}
	}

	return &domain.PredictionRequest{
		ModelName: v.schema.Condition,
		Features:  features,
		Threshold: threshold,
	}, nil
}

func deriveValue(v *ValidatedRecord, f *domain.FieldSpec) float64 {
	if f.Derive == nil {
		return 0
	}
	sources := make(map[string]float64, len(f.DerivedFrom))
	for _, src := range f.DerivedFrom {
		raw, _ := v.record.Value(src)
		text, _ := raw.(string)
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			n = 0
		}
		sources[src] = n
	}
	return f.Derive(sources)
}
