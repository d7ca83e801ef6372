package form

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncorisk-client/internal/domain"
	"github.com/oncorisk-client/internal/schema"
)

func TestNew_AppliesDefaults(t *testing.T) {
	registry := schema.NewRegistry()

	s, err := registry.Get(domain.ConditionColorectal)
	require.NoError(t, err)
	record, err := New(s)
	require.NoError(t, err)

	tests := []struct {
		key  string
		want string
	}{
		{"Ethnicity", "Other"},
		{"Lifestyle", "Sedentary"},
		{"Pre-existing Conditions", "None"},
		{"Age", ""},
	}
	for _, tt := range tests {
		v, ok := record.Value(tt.key)
		require.True(t, ok, "expected key %q", tt.key)
		assert.Equal(t, tt.want, v, "key %q", tt.key)
	}
}

func TestRecord_SetValueCoercion(t *testing.T) {
	registry := schema.NewRegistry()
	s, err := registry.Get(domain.ConditionLung)
	require.NoError(t, err)
	record, err := New(s)
	require.NoError(t, err)

	tests := []struct {
		name    string
		key     string
		value   any
		want    any
		wantErr bool
	}{
		{"String numeric", "age", "69", "69", false},
		{"Float from extraction", "pack_years", 66.0, "66", false},
		{"Int value", "age", 70, "70", false},
		{"Native bool", "copd_diagnosis", true, true, false},
		{"Yes spelling", "asbestos_exposure", "Yes", true, false},
		{"No spelling", "family_history", "no", false, false},
		{"Unknown key", "shoe_size", "45", nil, true},
		{"Bad bool text", "copd_diagnosis", "maybe", nil, true},
		{"Bad bool type", "copd_diagnosis", 3.5, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := record.SetValue(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			got, ok := record.Value(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManager_SetFieldRecomputesDerived(t *testing.T) {
	registry := schema.NewRegistry()
	m := NewManager()
	_, err := m.Start(registry, domain.ConditionLung)
	require.NoError(t, err)

	require.NoError(t, m.SetField("age", "69"))
	require.NoError(t, m.SetField("pack_years", "66"))

	v, ok := m.Active().Record().Value("cumulative_smoking")
	require.True(t, ok)
	assert.Equal(t, "4554", v)

	// A partially filled form derives with the missing source as zero.
	require.NoError(t, m.SetField("pack_years", ""))
	v, _ = m.Active().Record().Value("cumulative_smoking")
	assert.Equal(t, "0", v)
}

func TestManager_MergeExtraction(t *testing.T) {
	registry := schema.NewRegistry()
	m := NewManager()
	session, err := m.Start(registry, domain.ConditionLung)
	require.NoError(t, err)

	merged, err := m.MergeExtraction(session.ID(), domain.ExtractionResult{
		"age":            70.0,
		"packYears":      40.0,
		"copd_diagnosis": "Yes",
		"shoe_size":      45.0, // not in the schema, dropped
	})
	require.NoError(t, err)
	assert.Equal(t, 3, merged)

	record := m.Active().Record()
	age, _ := record.Value("age")
	assert.Equal(t, "70", age)
	packYears, _ := record.Value("pack_years")
	assert.Equal(t, "40", packYears)
	copd, _ := record.Value("copd_diagnosis")
	assert.Equal(t, true, copd)

	cumulative, _ := record.Value("cumulative_smoking")
	assert.Equal(t, "2800", cumulative)
}

func TestManager_MergeExtraction_NeverCopiesDerived(t *testing.T) {
	registry := schema.NewRegistry()
	m := NewManager()
	session, err := m.Start(registry, domain.ConditionLung)
	require.NoError(t, err)

	merged, err := m.MergeExtraction(session.ID(), domain.ExtractionResult{
		"age":                "50",
		"pack_years":         "10",
		"cumulative_smoking": "999999",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, merged)

	cumulative, _ := m.Active().Record().Value("cumulative_smoking")
	assert.Equal(t, "500", cumulative)
}

func TestManager_MergeExtraction_EmptyValuesNotProvided(t *testing.T) {
	registry := schema.NewRegistry()
	m := NewManager()
	session, err := m.Start(registry, domain.ConditionLung)
	require.NoError(t, err)

	require.NoError(t, m.SetField("age", "69"))
	require.NoError(t, m.SetField("family_history", true))

	// A provider that looked for a field but read nothing emits "". Such
	// values are not merged and never overwrite what the user entered.
	merged, err := m.MergeExtraction(session.ID(), domain.ExtractionResult{
		"age":            "",
		"family_history": "",
		"gender":         nil,
		"packYears":      40.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, merged)

	record := m.Active().Record()
	age, _ := record.Value("age")
	assert.Equal(t, "69", age)
	family, _ := record.Value("family_history")
	assert.Equal(t, true, family)
	gender, _ := record.Value("gender")
	assert.Equal(t, "Male", gender)
	packYears, _ := record.Value("pack_years")
	assert.Equal(t, "40", packYears)
}

func TestManager_MergeExtraction_StaleToken(t *testing.T) {
	registry := schema.NewRegistry()
	m := NewManager()
	first, err := m.Start(registry, domain.ConditionLung)
	require.NoError(t, err)
	staleToken := first.ID()

	// The user switches condition while the extraction is in flight.
	_, err = m.Start(registry, domain.ConditionBreast)
	require.NoError(t, err)

	merged, err := m.MergeExtraction(staleToken, domain.ExtractionResult{"age": "70"})
	assert.ErrorIs(t, err, domain.ErrStaleSession)
	assert.Zero(t, merged)

	// The active breast record must be untouched.
	radius, ok := m.Active().Record().Value("radius_mean")
	require.True(t, ok)
	assert.Equal(t, "", radius)
}

func TestManager_ApplyResult(t *testing.T) {
	registry := schema.NewRegistry()
	m := NewManager()
	session, err := m.Start(registry, domain.ConditionBreast)
	require.NoError(t, err)

	result := &domain.PredictionResult{Class: domain.ClassPositive, RiskLevel: domain.RiskHigh}
	require.NoError(t, m.ApplyResult(session.ID(), result))
	assert.Equal(t, result, m.Active().Result())

	err = m.ApplyResult(uuid.New(), &domain.PredictionResult{Class: domain.ClassNegative})
	assert.ErrorIs(t, err, domain.ErrStaleSession)
	assert.Equal(t, result, m.Active().Result())
}

func TestManager_StartUnknownCondition(t *testing.T) {
	registry := schema.NewRegistry()
	m := NewManager()

	_, err := m.Start(registry, domain.ConditionType("prostate"))
	assert.ErrorIs(t, err, domain.ErrUnknownCondition)
	assert.Nil(t, m.Active())
}
