// Package schema defines the per-condition feature schemas and the extraction
// provider alias tables. Schemas are data: they are registered once at process
// start and never change afterwards.
package schema

import (
	"github.com/oncorisk-client/internal/domain"
)

// Field group names used for form rendering.
const (
	GroupMean        = "mean"
	GroupStdError    = "se"
	GroupWorst       = "worst"
	GroupBasic       = "basic"
	GroupRiskFactors = "risk_factors"
	GroupPersonal    = "personal"
	GroupNutritional = "nutritional"
)

// Registry resolves condition tags to their feature schemas.
type Registry struct {
	schemas map[domain.ConditionType]*domain.FeatureSchema
}

// NewRegistry creates a registry with the three supported condition schemas.
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[domain.ConditionType]*domain.FeatureSchema)}
	r.register(breastSchema())
	r.register(lungSchema())
	r.register(colorectalSchema())
	return r
}

func (r *Registry) register(s *domain.FeatureSchema) {
	r.schemas[s.Condition] = s
}

// Get returns the schema for condition, or domain.ErrUnknownCondition.
func (r *Registry) Get(condition domain.ConditionType) (*domain.FeatureSchema, error) {
	s, ok := r.schemas[condition]
	if !ok {
		return nil, domain.ErrUnknownCondition
	}
	return s, nil
}

// Conditions returns the registered condition tags.
func (r *Registry) Conditions() []domain.ConditionType {
	return []domain.ConditionType{domain.ConditionBreast, domain.ConditionLung, domain.ConditionColorectal}
}

// breastSchema covers the Wisconsin-style cytology profile: thirty numeric
// measurements, ten each for the mean, standard error and worst statistic of
// the same underlying features.
func breastSchema() *domain.FeatureSchema {
	bases := []string{
		"radius", "texture", "perimeter", "area", "smoothness",
		"compactness", "concavity", "concave_points", "symmetry", "fractal_dimension",
	}
	suffixes := []struct {
		suffix string
		group  string
	}{
		{"_mean", GroupMean},
		{"_se", GroupStdError},
		{"_worst", GroupWorst},
	}

	fields := make([]domain.FieldSpec, 0, len(bases)*len(suffixes))
	for _, s := range suffixes {
		for _, b := range bases {
			fields = append(fields, domain.FieldSpec{
				Key:      b + s.suffix,
				Kind:     domain.FieldNumeric,
				Required: true,
				Group:    s.group,
			})
		}
	}
	return domain.NewFeatureSchema(domain.ConditionBreast, fields)
}

// lungSchema mixes numeric history fields, binary risk-factor flags and
// closed-choice categoricals. cumulative_smoking is derived from age and
// pack_years and recomputed whenever either input changes.
func lungSchema() *domain.FeatureSchema {
	fields := []domain.FieldSpec{
		{Key: "age", Kind: domain.FieldNumeric, Required: true, Group: GroupBasic},
		{Key: "pack_years", Kind: domain.FieldNumeric, Required: true, Group: GroupBasic},
		{
			Key:         "cumulative_smoking",
			Kind:        domain.FieldDerived,
			Group:       GroupBasic,
			DerivedFrom: []string{"age", "pack_years"},
			Derive: func(sources map[string]float64) float64 {
				return sources["age"] * sources["pack_years"]
			},
		},
		{Key: "gender", Kind: domain.FieldEnum, EnumValues: []string{"Male", "Female"}, Default: "Male", Group: GroupBasic},
		{Key: "radon_exposure", Kind: domain.FieldEnum, EnumValues: []string{"High", "Medium", "Low", "Unknown"}, Default: "Unknown", Group: GroupBasic},
		{Key: "asbestos_exposure", Kind: domain.FieldBoolean, Group: GroupRiskFactors},
		{Key: "secondhand_smoke_exposure", Kind: domain.FieldBoolean, Group: GroupRiskFactors},
		{Key: "copd_diagnosis", Kind: domain.FieldBoolean, Group: GroupRiskFactors},
		{Key: "alcohol_consumption", Kind: domain.FieldEnum, EnumValues: []string{"None", "Moderate", "High"}, Default: "None", Group: GroupRiskFactors},
		{Key: "family_history", Kind: domain.FieldBoolean, Group: GroupRiskFactors},
	}
	return domain.NewFeatureSchema(domain.ConditionLung, fields)
}

// colorectalSchema mixes numeric, categorical, binary and free-text fields.
// The nutritional keys embed units and must reach the wire verbatim; the
// remote model is keyed on these exact strings.
func colorectalSchema() *domain.FeatureSchema {
	fields := []domain.FieldSpec{
		{Key: "Age", Kind: domain.FieldNumeric, Required: true, Group: GroupPersonal},
		{Key: "Gender", Kind: domain.FieldEnum, EnumValues: []string{"Male", "Female"}, Default: "Male", Group: GroupPersonal},
		{Key: "BMI", Kind: domain.FieldNumeric, Required: true, Group: GroupPersonal},
		{Key: "Lifestyle", Kind: domain.FieldEnum, EnumValues: []string{"Sedentary", "Moderate", "Active", "Smoker"}, Default: "Sedentary", Group: GroupPersonal},
		{Key: "Ethnicity", Kind: domain.FieldEnum, EnumValues: []string{"African", "Asian", "Caucasian", "Hispanic", "Other"}, Default: "Other", Group: GroupPersonal},
		{Key: "Family_History_CRC", Kind: domain.FieldBoolean, Group: GroupPersonal},
		{Key: "Pre-existing Conditions", Kind: domain.FieldText, Default: "None", Group: GroupPersonal},
		{Key: "Carbohydrates (g)", Kind: domain.FieldNumeric, Required: true, Group: GroupNutritional},
		{Key: "Proteins (g)", Kind: domain.FieldNumeric, Required: true, Group: GroupNutritional},
		{Key: "Fats (g)", Kind: domain.FieldNumeric, Required: true, Group: GroupNutritional},
		{Key: "Vitamin A (IU)", Kind: domain.FieldNumeric, Required: true, Group: GroupNutritional},
		{Key: "Vitamin C (mg)", Kind: domain.FieldNumeric, Required: true, Group: GroupNutritional},
		{Key: "Iron (mg)", Kind: domain.FieldNumeric, Required: true, Group: GroupNutritional},
	}
	return domain.NewFeatureSchema(domain.ConditionColorectal, fields)
}
