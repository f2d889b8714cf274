package features

import (
	"errors"

	"strokerisk/internal/pkg/convert"

	"github.com/tidwall/gjson"
)

// ErrNotObject is returned when the API payload is not a JSON object.
var ErrNotObject = errors.New("data must be a JSON object")

// legacyResidenceKey is the capitalised key older API clients send.
const legacyResidenceKey = "Residence_type"

// FromAPI decodes the "data" object of a /predict_api request by field name,
// so key order in the body does not matter. age and avg_glucose_level are
// required; a null or missing bmi becomes DefaultBMI. When a key repeats,
// the last occurrence wins.
func FromAPI(raw []byte) (Patient, error) {
	if !gjson.ValidBytes(raw) {
		return Patient{}, ErrNotObject
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return Patient{}, ErrNotObject
	}

	fields := lastValues(obj)
	residence, ok := fields[legacyResidenceKey]
	if !ok {
		residence = fields[FieldResidenceType]
	}
	p := Patient{
		Gender:        Genders.Lookup(label(fields[FieldGender])),
		Hypertension:  Hypertensions.Lookup(label(fields[FieldHypertension])),
		HeartDisease:  HeartDiseases.Lookup(label(fields[FieldHeartDisease])),
		EverMarried:   EverMarrieds.Lookup(label(fields[FieldEverMarried])),
		WorkType:      WorkTypes.Lookup(label(fields[FieldWorkType])),
		ResidenceType: ResidenceTypes.Lookup(label(residence)),
		SmokingStatus: SmokingStatuses.Lookup(label(fields[FieldSmokingStatus])),
		BMI:           DefaultBMI,
	}

	var err error
	if p.Age, err = jsonNumber(FieldAge, fields[FieldAge]); err != nil {
		return Patient{}, err
	}
	if p.AvgGlucoseLevel, err = jsonNumber(FieldAvgGlucoseLevel, fields[FieldAvgGlucoseLevel]); err != nil {
		return Patient{}, err
	}
	if bmi, ok := fields[FieldBMI]; ok && bmi.Type != gjson.Null {
		if p.BMI, err = jsonNumber(FieldBMI, bmi); err != nil {
			return Patient{}, err
		}
	}
	return p, nil
}

// lastValues indexes the members of obj by key. A repeated key keeps its
// last value.
func lastValues(obj gjson.Result) map[string]gjson.Result {
	out := make(map[string]gjson.Result)
	obj.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value
		return true
	})
	return out
}

// FromAPIOrdered walks the keys of the "data" object in document order and
// appends the encoding of every recognised key. Unknown keys are skipped, so
// the result only lines up with the model when the caller sends all ten
// fields in model order.
func FromAPIOrdered(raw []byte) ([]float64, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrNotObject
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return nil, ErrNotObject
	}
	out := make([]float64, 0, Len)
	var walkErr error
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		switch name {
		case FieldBMI:
			if value.Type == gjson.Null {
				out = append(out, DefaultBMI)
				return true
			}
			fallthrough
		case FieldAge, FieldAvgGlucoseLevel:
			v, err := jsonNumber(name, value)
			if err != nil {
				walkErr = err
				return false
			}
			out = append(out, v)
		case FieldGender:
			out = append(out, float64(Genders.Lookup(label(value))))
		case FieldHypertension:
			out = append(out, float64(Hypertensions.Lookup(label(value))))
		case FieldHeartDisease:
			out = append(out, float64(HeartDiseases.Lookup(label(value))))
		case FieldEverMarried:
			out = append(out, float64(EverMarrieds.Lookup(label(value))))
		case FieldWorkType:
			out = append(out, float64(WorkTypes.Lookup(label(value))))
		case legacyResidenceKey:
			out = append(out, float64(ResidenceTypes.Lookup(label(value))))
		case FieldSmokingStatus:
			out = append(out, float64(SmokingStatuses.Lookup(label(value))))
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// label returns the string form of a categorical value. Non-string JSON
// values never match a label and therefore resolve to the default code.
func label(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

func jsonNumber(field string, r gjson.Result) (float64, error) {
	switch r.Type {
	case gjson.Number:
		if !convert.IsFinite(r.Num) {
			return 0, &FieldError{Field: field, Value: r.Raw, Err: ErrNotNumeric}
		}
		return r.Num, nil
	case gjson.String:
		v, err := convert.ParseFloat(r.Str)
		if err != nil {
			return 0, &FieldError{Field: field, Value: r.Str, Err: ErrNotNumeric}
		}
		return v, nil
	case gjson.Null:
		if !r.Exists() {
			return 0, &FieldError{Field: field, Err: ErrMissing}
		}
		return 0, &FieldError{Field: field, Value: r.Raw, Err: ErrNotNumeric}
	default:
		return 0, &FieldError{Field: field, Value: r.Raw, Err: ErrNotNumeric}
	}
}
