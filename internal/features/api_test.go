package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAPI_FixedOrderRegardlessOfKeyOrder(t *testing.T) {
	raw := []byte(`{
		"smoking_status": "smokes",
		"bmi": 25.0,
		"avg_glucose_level": 150.5,
		"Residence_type": "Urban",
		"work_type": "Private",
		"ever_married": "Yes",
		"heart_disease": "No",
		"hypertension": "Yes",
		"age": 80,
		"gender": "Female"
	}`)
	p, err := FromAPI(raw)
	require.NoError(t, err)
	assert.Equal(t, Vector{1, 80, 1, 0, 0, 0, 1, 150.5, 25, 2}, p.Vector())
}

func TestFromAPI_BMIDefault(t *testing.T) {
	for _, raw := range []string{
		`{"age": 50, "avg_glucose_level": 90}`,
		`{"age": 50, "avg_glucose_level": 90, "bmi": null}`,
	} {
		p, err := FromAPI([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, DefaultBMI, p.Vector()[IdxBMI], raw)
	}
}

func TestFromAPI_RequiresNumerics(t *testing.T) {
	_, err := FromAPI([]byte(`{"avg_glucose_level": 90}`))
	assert.ErrorIs(t, err, ErrMissing)

	_, err = FromAPI([]byte(`{"age": 50, "avg_glucose_level": null}`))
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = FromAPI([]byte(`{"age": "old", "avg_glucose_level": 90}`))
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = FromAPI([]byte(`{"age": true, "avg_glucose_level": 90}`))
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestFromAPI_NumericStringsAndLowercaseResidence(t *testing.T) {
	p, err := FromAPI([]byte(`{"age": "67", "avg_glucose_level": "100.25", "bmi": "30", "residence_type": "Urban"}`))
	require.NoError(t, err)
	v := p.Vector()
	assert.Equal(t, 67.0, v[IdxAge])
	assert.Equal(t, 100.25, v[IdxAvgGlucoseLevel])
	assert.Equal(t, 30.0, v[IdxBMI])
	assert.Equal(t, 1.0, v[IdxResidenceType])
}

func TestFromAPI_UnknownLabelsUseDefaults(t *testing.T) {
	p, err := FromAPI([]byte(`{"age": 1, "avg_glucose_level": 1, "gender": "robot", "work_type": 3, "smoking_status": null}`))
	require.NoError(t, err)
	v := p.Vector()
	assert.Equal(t, 0.0, v[IdxGender])
	assert.Equal(t, 0.0, v[IdxWorkType])
	assert.Equal(t, 0.0, v[IdxSmokingStatus])
}

func TestFromAPI_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"x"`, `{`, ``} {
		_, err := FromAPI([]byte(raw))
		assert.ErrorIs(t, err, ErrNotObject, raw)
	}
}

func TestFromAPIOrdered_FollowsDocumentOrder(t *testing.T) {
	got, err := FromAPIOrdered([]byte(`{"age": 67, "gender": "Male", "hypertension": "Yes"}`))
	require.NoError(t, err)
	assert.Equal(t, []float64{67, 0, 1}, got)
}

func TestFromAPIOrdered_NullBMIAndUnknownKeys(t *testing.T) {
	got, err := FromAPIOrdered([]byte(`{"bmi": null, "note": "ignored", "Residence_type": "Urban", "residence_type": "Urban"}`))
	require.NoError(t, err)
	assert.Equal(t, []float64{DefaultBMI, 1}, got)
}

func TestFromAPIOrdered_MalformedNumber(t *testing.T) {
	_, err := FromAPIOrdered([]byte(`{"gender": "Male", "age": "abc"}`))
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestFromAPI_RejectsOverflow(t *testing.T) {
	for _, raw := range []string{
		`{"age": 1e400, "avg_glucose_level": 90}`,
		`{"age": 50, "avg_glucose_level": -1e400}`,
		`{"age": 50, "avg_glucose_level": 90, "bmi": "1e99999999"}`,
	} {
		_, err := FromAPI([]byte(raw))
		assert.ErrorIs(t, err, ErrNotNumeric, raw)
	}

	_, err := FromAPIOrdered([]byte(`{"age": 1e400}`))
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestFromAPI_RepeatedKeyKeepsLast(t *testing.T) {
	p, err := FromAPI([]byte(`{"age": 30, "gender": "Male", "avg_glucose_level": 90, "age": 70, "gender": "Female"}`))
	require.NoError(t, err)
	v := p.Vector()
	assert.Equal(t, 70.0, v[IdxAge])
	assert.Equal(t, 1.0, v[IdxGender])
}
