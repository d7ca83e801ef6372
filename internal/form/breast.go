package form

import (
	"fmt"

	"github.com/oncorisk-client/internal/domain"
)

// BreastRecord holds the thirty cytology measurements of the breast profile,
// grouped as mean, standard error and worst statistics. All values stay
// strings until the validator and builder coerce them.
type BreastRecord struct {
	RadiusMean           string
	TextureMean          string
	PerimeterMean        string
	AreaMean             string
	SmoothnessMean       string
	CompactnessMean      string
	ConcavityMean        string
	ConcavePointsMean    string
	SymmetryMean         string
	FractalDimensionMean string

	RadiusSE           string
	TextureSE          string
	PerimeterSE        string
	AreaSE             string
	SmoothnessSE       string
	CompactnessSE      string
	ConcavitySE        string
	ConcavePointsSE    string
	SymmetrySE         string
	FractalDimensionSE string

	RadiusWorst           string
	TextureWorst          string
	PerimeterWorst        string
	AreaWorst             string
	SmoothnessWorst       string
	CompactnessWorst      string
	ConcavityWorst        string
	ConcavePointsWorst    string
	SymmetryWorst         string
	FractalDimensionWorst string
}

// Condition returns the condition tag this record belongs to.
func (r *BreastRecord) Condition() domain.ConditionType {
	return domain.ConditionBreast
}

func (r *BreastRecord) fields() map[string]*string {
	return map[string]*string{
		"radius_mean":             &r.RadiusMean,
		"texture_mean":            &r.TextureMean,
		"perimeter_mean":          &r.PerimeterMean,
		"area_mean":               &r.AreaMean,
		"smoothness_mean":         &r.SmoothnessMean,
		"compactness_mean":        &r.CompactnessMean,
		"concavity_mean":          &r.ConcavityMean,
		"concave_points_mean":     &r.ConcavePointsMean,
		"symmetry_mean":           &r.SymmetryMean,
		"fractal_dimension_mean":  &r.FractalDimensionMean,
		"radius_se":               &r.RadiusSE,
		"texture_se":              &r.TextureSE,
		"perimeter_se":            &r.PerimeterSE,
		"area_se":                 &r.AreaSE,
		"smoothness_se":           &r.SmoothnessSE,
		"compactness_se":          &r.CompactnessSE,
		"concavity_se":            &r.ConcavitySE,
		"concave_points_se":       &r.ConcavePointsSE,
		"symmetry_se":             &r.SymmetrySE,
		"fractal_dimension_se":    &r.FractalDimensionSE,
		"radius_worst":            &r.RadiusWorst,
		"texture_worst":           &r.TextureWorst,
		"perimeter_worst":         &r.PerimeterWorst,
		"area_worst":              &r.AreaWorst,
		"smoothness_worst":        &r.SmoothnessWorst,
		"compactness_worst":       &r.CompactnessWorst,
		"concavity_worst":         &r.ConcavityWorst,
		"concave_points_worst":    &r.ConcavePointsWorst,
		"symmetry_worst":          &r.SymmetryWorst,
		"fractal_dimension_worst": &r.FractalDimensionWorst,
	}
}

// Value returns the raw value for key.
func (r *BreastRecord) Value(key string) (any, bool) {
	f, ok := r.fields()[key]
	if !ok {
		return nil, false
	}
	return *f, true
}

// SetValue stores a raw value for key.
func (r *BreastRecord) SetValue(key string, v any) error {
	f, ok := r.fields()[key]
	if !ok {
		return fmt.Errorf("breast record has no field %q", key)
	}
	return setString(f, v)
}
