package schema

import (
	"github.com/oncorisk-client/internal/domain"
)

// Extraction alias tables. The extraction provider's vocabulary differs from
// the schema field keys, so recognised provider keys are translated through an
// explicit per-condition table before a merge. Provider keys not listed here
// and not matching a schema key verbatim are dropped.
//
// The tables cover the keys the provider is known to emit. Completing them
// against the provider's documented output is a configuration task, not a
// code change.
var extractionAliases = map[domain.ConditionType]map[string]string{
	domain.ConditionLung: {
		"packYears": "pack_years",
	},
	domain.ConditionColorectal: {
		"age":            "Age",
		"bmi":            "BMI",
		"gender":         "Gender",
		"lifestyle":      "Lifestyle",
		"ethnicity":      "Ethnicity",
		"family_history": "Family_History_CRC",
		"conditions":     "Pre-existing Conditions",
		"carbs":          "Carbohydrates (g)",
		"proteins":       "Proteins (g)",
		"fats":           "Fats (g)",
		"vitA":           "Vitamin A (IU)",
		"vitC":           "Vitamin C (mg)",
		"iron":           "Iron (mg)",
	},
	// Breast extraction uses the schema keys directly.
	domain.ConditionBreast: {},
}

// ResolveExtractionKey maps a provider key to the schema key it fills, first
// through the condition's alias table and then verbatim. The second return is
// false when the key is not recognised by the active schema.
func ResolveExtractionKey(s *domain.FeatureSchema, providerKey string) (string, bool) {
	if aliases, ok := extractionAliases[s.Condition]; ok {
		if mapped, ok := aliases[providerKey]; ok {
			if _, declared := s.Field(mapped); declared {
				return mapped, true
			}
			return "", false
		}
	}
	if _, declared := s.Field(providerKey); declared {
		return providerKey, true
	}
	return "", false
}
