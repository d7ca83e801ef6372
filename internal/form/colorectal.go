package form

import (
	"fmt"

	"github.com/oncorisk-client/internal/domain"
)

// ColorectalRecord holds the colorectal profile: personal attributes across
// several categorical axes plus six nutritional measurements whose schema
// keys embed units (e.g. "Vitamin C (mg)") and reach the wire verbatim.
type ColorectalRecord struct {
	Age                   string
	Gender                string
	BMI                   string
	Lifestyle             string
	Ethnicity             string
	FamilyHistoryCRC      bool
	PreexistingConditions string

	Carbohydrates string
	Proteins      string
	Fats          string
	VitaminA      string
	VitaminC      string
	Iron          string
}

// Condition returns the condition tag this record belongs to.
func (r *ColorectalRecord) Condition() domain.ConditionType {
	return domain.ConditionColorectal
}

// Value returns the raw value for key.
func (r *ColorectalRecord) Value(key string) (any, bool) {
	switch key {
	case "Age":
		return r.Age, true
	case "Gender":
		return r.Gender, true
	case "BMI":
		return r.BMI, true
	case "Lifestyle":
		return r.Lifestyle, true
	case "Ethnicity":
		return r.Ethnicity, true
	case "Family_History_CRC":
		return r.FamilyHistoryCRC, true
	case "Pre-existing Conditions":
		return r.PreexistingConditions, true
	case "Carbohydrates (g)":
		return r.Carbohydrates, true
	case "Proteins (g)":
		return r.Proteins, true
	case "Fats (g)":
		return r.Fats, true
	case "Vitamin A (IU)":
		return r.VitaminA, true
	case "Vitamin C (mg)":
		return r.VitaminC, true
	case "Iron (mg)":
		return r.Iron, true
	}
	return nil, false
}

// SetValue stores a raw value for key.
func (r *ColorectalRecord) SetValue(key string, v any) error {
	switch key {
	case "Age":
		return setString(&r.Age, v)
	case "Gender":
		return setString(&r.Gender, v)
	case "BMI":
		return setString(&r.BMI, v)
	case "Lifestyle":
		return setString(&r.Lifestyle, v)
	case "Ethnicity":
		return setString(&r.Ethnicity, v)
	case "Family_History_CRC":
		return setBool(&r.FamilyHistoryCRC, v)
	case "Pre-existing Conditions":
		return setString(&r.PreexistingConditions, v)
	case "Carbohydrates (g)":
		return setString(&r.Carbohydrates, v)
	case "Proteins (g)":
		return setString(&r.Proteins, v)
	case "Fats (g)":
		return setString(&r.Fats, v)
	case "Vitamin A (IU)":
		return setString(&r.VitaminA, v)
	case "Vitamin C (mg)":
		return setString(&r.VitaminC, v)
	case "Iron (mg)":
		return setString(&r.Iron, v)
	}
	return fmt.Errorf("colorectal record has no field %q", key)
}
