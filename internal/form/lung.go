package form

import (
	"fmt"

	"github.com/oncorisk-client/internal/domain"
)

// LungRecord holds the smoking-history profile: two numeric inputs, the
// derived cumulative exposure, two categorical axes and four binary risk
// flags. CumulativeSmoking is never entered directly; the session recomputes
// it whenever age or pack_years change.
type LungRecord struct {
	Age               string
	PackYears         string
	CumulativeSmoking string

	Gender             string
	RadonExposure      string
	AlcoholConsumption string

	AsbestosExposure        bool
	SecondhandSmokeExposure bool
	COPDDiagnosis           bool
	FamilyHistory           bool
}

// Condition returns the condition tag this record belongs to.
func (r *LungRecord) Condition() domain.ConditionType {
	return domain.ConditionLung
}

// Value returns the raw value for key.
func (r *LungRecord) Value(key string) (any, bool) {
	switch key {
	case "age":
		return r.Age, true
	case "pack_years":
		return r.PackYears, true
	case "cumulative_smoking":
		return r.CumulativeSmoking, true
	case "gender":
		return r.Gender, true
	case "radon_exposure":
		return r.RadonExposure, true
	case "alcohol_consumption":
		return r.AlcoholConsumption, true
	case "asbestos_exposure":
		return r.AsbestosExposure, true
	case "secondhand_smoke_exposure":
		return r.SecondhandSmokeExposure, true
	case "copd_diagnosis":
		return r.COPDDiagnosis, true
	case "family_history":
		return r.FamilyHistory, true
	}
	return nil, false
}

// SetValue stores a raw value for key.
func (r *LungRecord) SetValue(key string, v any) error {
	switch key {
	case "age":
		return setString(&r.Age, v)
	case "pack_years":
		return setString(&r.PackYears, v)
	case "cumulative_smoking":
		return setString(&r.CumulativeSmoking, v)
	case "gender":
		return setString(&r.Gender, v)
	case "radon_exposure":
		return setString(&r.RadonExposure, v)
	case "alcohol_consumption":
		return setString(&r.AlcoholConsumption, v)
	case "asbestos_exposure":
		return setBool(&r.AsbestosExposure, v)
	case "secondhand_smoke_exposure":
		return setBool(&r.SecondhandSmokeExposure, v)
	case "copd_diagnosis":
		return setBool(&r.COPDDiagnosis, v)
	case "family_history":
		return setBool(&r.FamilyHistory, v)
	}
	return fmt.Errorf("lung record has no field %q", key)
}
