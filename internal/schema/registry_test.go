package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncorisk-client/internal/domain"
)

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name      string
		condition domain.ConditionType
		wantErr   bool
	}{
		{"Breast schema", domain.ConditionBreast, false},
		{"Lung schema", domain.ConditionLung, false},
		{"Colorectal schema", domain.ConditionColorectal, false},
		{"Unknown condition", domain.ConditionType("prostate"), true},
		{"Empty condition", domain.ConditionType(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := registry.Get(tt.condition)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownCondition)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.condition, s.Condition)
		})
	}
}

func TestRegistry_Conditions(t *testing.T) {
	registry := NewRegistry()
	conditions := registry.Conditions()

	assert.Equal(t, []domain.ConditionType{
		domain.ConditionBreast,
		domain.ConditionLung,
		domain.ConditionColorectal,
	}, conditions)
}

func TestBreastSchema_Shape(t *testing.T) {
	registry := NewRegistry()
	s, err := registry.Get(domain.ConditionBreast)
	require.NoError(t, err)

	assert.Len(t, s.Fields, 30)

	groups := map[string]int{}
	for _, f := range s.Fields {
		if f.Kind != domain.FieldNumeric {
			t.Errorf("field %q kind = %v, want numeric", f.Key, f.Kind)
		}
		if !f.Required {
			t.Errorf("field %q should be required", f.Key)
		}
		groups[f.Group]++
	}
	assert.Equal(t, 10, groups[GroupMean])
	assert.Equal(t, 10, groups[GroupStdError])
	assert.Equal(t, 10, groups[GroupWorst])

	for _, key := range []string{"radius_mean", "concave_points_se", "fractal_dimension_worst"} {
		_, ok := s.Field(key)
		assert.True(t, ok, "expected field %q", key)
	}
}

func TestLungSchema_Shape(t *testing.T) {
	registry := NewRegistry()
	s, err := registry.Get(domain.ConditionLung)
	require.NoError(t, err)

	for _, key := range []string{"age", "pack_years"} {
		f, ok := s.Field(key)
		require.True(t, ok)
		assert.Equal(t, domain.FieldNumeric, f.Kind)
		assert.True(t, f.Required)
	}

	derived, ok := s.Field("cumulative_smoking")
	require.True(t, ok)
	assert.Equal(t, domain.FieldDerived, derived.Kind)
	assert.False(t, derived.Required)
	assert.Equal(t, []string{"age", "pack_years"}, derived.DerivedFrom)
	require.NotNil(t, derived.Derive)
	assert.InDelta(t, 4554.0, derived.Derive(map[string]float64{"age": 69, "pack_years": 66}), 1e-9)

	gender, ok := s.Field("gender")
	require.True(t, ok)
	assert.Equal(t, []string{"Male", "Female"}, gender.EnumValues)

	radon, ok := s.Field("radon_exposure")
	require.True(t, ok)
	assert.Equal(t, "Unknown", radon.Default)

	for _, key := range []string{"asbestos_exposure", "secondhand_smoke_exposure", "copd_diagnosis", "family_history"} {
		f, ok := s.Field(key)
		require.True(t, ok, "expected field %q", key)
		assert.Equal(t, domain.FieldBoolean, f.Kind)
	}
}

func TestColorectalSchema_Shape(t *testing.T) {
	registry := NewRegistry()
	s, err := registry.Get(domain.ConditionColorectal)
	require.NoError(t, err)

	// Nutritional keys reach the wire verbatim, units included.
	nutritional := []string{
		"Carbohydrates (g)", "Proteins (g)", "Fats (g)",
		"Vitamin A (IU)", "Vitamin C (mg)", "Iron (mg)",
	}
	for _, key := range nutritional {
		f, ok := s.Field(key)
		require.True(t, ok, "expected field %q", key)
		assert.Equal(t, domain.FieldNumeric, f.Kind)
		assert.True(t, f.Required)
		assert.Equal(t, GroupNutritional, f.Group)
	}

	ethnicity, ok := s.Field("Ethnicity")
	require.True(t, ok)
	assert.Equal(t, "Other", ethnicity.Default)
	assert.Contains(t, ethnicity.EnumValues, "Hispanic")

	conditions, ok := s.Field("Pre-existing Conditions")
	require.True(t, ok)
	assert.Equal(t, domain.FieldText, conditions.Kind)
	assert.Equal(t, "None", conditions.Default)

	crc, ok := s.Field("Family_History_CRC")
	require.True(t, ok)
	assert.Equal(t, domain.FieldBoolean, crc.Kind)
}

func TestResolveExtractionKey(t *testing.T) {
	registry := NewRegistry()
	lung, err := registry.Get(domain.ConditionLung)
	require.NoError(t, err)
	colorectal, err := registry.Get(domain.ConditionColorectal)
	require.NoError(t, err)
	breast, err := registry.Get(domain.ConditionBreast)
	require.NoError(t, err)

	tests := []struct {
		name        string
		schema      *domain.FeatureSchema
		providerKey string
		want        string
		wantOK      bool
	}{
		{"Lung alias", lung, "packYears", "pack_years", true},
		{"Lung verbatim", lung, "age", "age", true},
		{"Lung unknown", lung, "shoe_size", "", false},
		{"Colorectal nutrient alias", colorectal, "vitC", "Vitamin C (mg)", true},
		{"Colorectal conditions alias", colorectal, "conditions", "Pre-existing Conditions", true},
		{"Colorectal verbatim unit key", colorectal, "Iron (mg)", "Iron (mg)", true},
		{"Breast verbatim", breast, "radius_mean", "radius_mean", true},
		{"Breast unknown", breast, "packYears", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveExtractionKey(tt.schema, tt.providerKey)
			if ok != tt.wantOK {
				t.Fatalf("ResolveExtractionKey(%q) ok = %v, want %v", tt.providerKey, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ResolveExtractionKey(%q) = %q, want %q", tt.providerKey, got, tt.want)
			}
		})
	}
}
