package features

import (
	"net/url"

	"strokerisk/internal/pkg/convert"
)

// Form field names posted by the prediction page.
const (
	FieldGender          = "gender"
	FieldAge             = "age"
	FieldHypertension    = "hypertension"
	FieldHeartDisease    = "heart_disease"
	FieldEverMarried     = "ever_married"
	FieldWorkType        = "work_type"
	FieldResidenceType   = "residence_type"
	FieldAvgGlucoseLevel = "avg_glucose_level"
	FieldBMI             = "bmi"
	FieldSmokingStatus   = "smoking_status"
)

// FromForm decodes a form submission. Blank or absent numeric fields become 0;
// text that is present but not a number is a *FieldError.
func FromForm(values url.Values) (Patient, error) {
	p := Patient{
		Gender:        Genders.Lookup(values.Get(FieldGender)),
		Hypertension:  Hypertensions.Lookup(values.Get(FieldHypertension)),
		HeartDisease:  HeartDiseases.Lookup(values.Get(FieldHeartDisease)),
		EverMarried:   EverMarrieds.Lookup(values.Get(FieldEverMarried)),
		WorkType:      WorkTypes.Lookup(values.Get(FieldWorkType)),
		ResidenceType: ResidenceTypes.Lookup(values.Get(FieldResidenceType)),
		SmokingStatus: SmokingStatuses.Lookup(values.Get(FieldSmokingStatus)),
	}
	var err error
	if p.Age, err = formNumber(values, FieldAge); err != nil {
		return Patient{}, err
	}
	if p.AvgGlucoseLevel, err = formNumber(values, FieldAvgGlucoseLevel); err != nil {
		return Patient{}, err
	}
	if p.BMI, err = formNumber(values, FieldBMI); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func formNumber(values url.Values, field string) (float64, error) {
	raw := values.Get(field)
	v, err := convert.ParseFloatOr(raw, 0)
	if err != nil {
		return 0, &FieldError{Field: field, Value: raw, Err: ErrNotNumeric}
	}
	return v, nil
}
