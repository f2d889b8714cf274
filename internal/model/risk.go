// Package model loads the stroke classifier and exposes it behind Classifier.
package model

import (
	"context"
	"errors"
)

var (
	// ErrFeatureLength is returned when a vector does not match the model width.
	ErrFeatureLength = errors.New("feature vector length does not match model")
	// ErrNoModel is returned when no classifier has been loaded.
	ErrNoModel = errors.New("model not loaded")
)

// RiskClass is the binary outcome reported to clients.
type RiskClass int

const (
	RiskLow      RiskClass = 0
	RiskElevated RiskClass = 1
)

// ClassFromCode collapses a raw model class code to a RiskClass; every
// non-zero code counts as elevated.
func ClassFromCode(code int) RiskClass {
	if code == 0 {
		return RiskLow
	}
	return RiskElevated
}

func (c RiskClass) String() string {
	if c == RiskLow {
		return "low"
	}
	return "elevated"
}

const (
	lowRiskAdvice = "The prediction indicates a low risk of stroke. To maintain this, focus on a balanced diet rich in fruits, vegetables, and whole grains. " +
		"Regular physical activity and avoiding smoking can also significantly reduce the risk. Monitoring blood pressure and cholesterol levels is essential, " +
		"along with managing stress effectively. Regular check-ups with healthcare providers can help ensure early detection and prevention."
	elevatedRiskAdvice = "Our prediction indicates a potential risk of stroke. Its imperative to promptly seek medical advice for a comprehensive assessment and appropriate management. " +
		"To reduce this risk, prioritize a healthy lifestyle with a balanced diet, regular physical activity, and avoiding smoking. " +
		"Managing underlying conditions like hypertension and diabetes is also crucial. " +
		"Consistent monitoring and adherence to medical guidance can significantly mitigate the risk of stroke and promote overall health."
)

// Advice returns the fixed explanation shown next to a result.
func (c RiskClass) Advice() string {
	if c == RiskLow {
		return lowRiskAdvice
	}
	return elevatedRiskAdvice
}

// Classifier assigns a risk class to a feature vector.
type Classifier interface {
	Classify(ctx context.Context, features []float64) (RiskClass, error)
}
