// Package features turns patient attributes into the numeric vector consumed
// by the stroke classifier.
package features

import (
	"errors"
	"fmt"
)

// Len is the number of features the classifier was trained on.
const Len = 10

// Positions of each feature inside a Vector.
const (
	IdxGender = iota
	IdxAge
	IdxHypertension
	IdxHeartDisease
	IdxEverMarried
	IdxWorkType
	IdxResidenceType
	IdxAvgGlucoseLevel
	IdxBMI
	IdxSmokingStatus
)

// DefaultBMI replaces a null or missing bmi on the JSON API.
const DefaultBMI = 28.89

var names = [Len]string{
	"gender",
	"age",
	"hypertension",
	"heart_disease",
	"ever_married",
	"work_type",
	"residence_type",
	"avg_glucose_level",
	"bmi",
	"smoking_status",
}

// Names returns the feature names in vector order.
func Names() []string {
	return append([]string(nil), names[:]...)
}

// Vector is a fixed-order feature row.
type Vector [Len]float64

// Slice returns the vector as a slice.
func (v Vector) Slice() []float64 {
	return append([]float64(nil), v[:]...)
}

// Row returns the vector as a 1 x Len matrix.
func (v Vector) Row() [][]float64 {
	return [][]float64{v.Slice()}
}

// Patient holds one set of decoded inputs.
type Patient struct {
	Gender          Gender
	Age             float64
	Hypertension    Hypertension
	HeartDisease    HeartDisease
	EverMarried     EverMarried
	WorkType        WorkType
	ResidenceType   ResidenceType
	AvgGlucoseLevel float64
	BMI             float64
	SmokingStatus   SmokingStatus
}

// Vector lays the patient out in model order.
func (p Patient) Vector() Vector {
	var v Vector
	v[IdxGender] = float64(p.Gender)
	v[IdxAge] = p.Age
	v[IdxHypertension] = float64(p.Hypertension)
	v[IdxHeartDisease] = float64(p.HeartDisease)
	v[IdxEverMarried] = float64(p.EverMarried)
	v[IdxWorkType] = float64(p.WorkType)
	v[IdxResidenceType] = float64(p.ResidenceType)
	v[IdxAvgGlucoseLevel] = p.AvgGlucoseLevel
	v[IdxBMI] = p.BMI
	v[IdxSmokingStatus] = float64(p.SmokingStatus)
	return v
}

var (
	ErrMissing    = errors.New("is required")
	ErrNotNumeric = errors.New("is not a number")
)

// FieldError reports a numeric field that could not be decoded.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %v: %q", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }
