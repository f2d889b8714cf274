package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablesFallBackToDefault(t *testing.T) {
	for _, label := range []string{"", "unknown", "male", "YES"} {
		assert.Equal(t, GenderMale, Genders.Lookup(label), label)
		assert.Equal(t, HypertensionNo, Hypertensions.Lookup(label), label)
		assert.Equal(t, HeartDiseaseNo, HeartDiseases.Lookup(label), label)
		assert.Equal(t, EverMarriedYes, EverMarrieds.Lookup(label), label)
		assert.Equal(t, WorkPrivate, WorkTypes.Lookup(label), label)
		assert.Equal(t, ResidenceRural, ResidenceTypes.Lookup(label), label)
		assert.Equal(t, SmokingFormerly, SmokingStatuses.Lookup(label), label)
	}
}

func TestTablesDefaultCodesAreZero(t *testing.T) {
	assert.Equal(t, 0, int(Genders.Default))
	assert.Equal(t, 0, int(Hypertensions.Default))
	assert.Equal(t, 0, int(HeartDiseases.Default))
	assert.Equal(t, 0, int(EverMarrieds.Default))
	assert.Equal(t, 0, int(WorkTypes.Default))
	assert.Equal(t, 0, int(ResidenceTypes.Default))
	assert.Equal(t, 0, int(SmokingStatuses.Default))
}

func TestTablesKnownLabels(t *testing.T) {
	assert.Equal(t, GenderFemale, Genders.Lookup("Female"))
	assert.Equal(t, GenderOther, Genders.Lookup("Other"))
	assert.Equal(t, HypertensionYes, Hypertensions.Lookup("Yes"))
	assert.Equal(t, HeartDiseaseYes, HeartDiseases.Lookup("Yes"))
	assert.Equal(t, EverMarriedNo, EverMarrieds.Lookup("No"))
	assert.Equal(t, WorkSelfEmployed, WorkTypes.Lookup("Self-employed"))
	assert.Equal(t, WorkGovtJob, WorkTypes.Lookup("Govt_job"))
	assert.Equal(t, WorkChildren, WorkTypes.Lookup("children"))
	assert.Equal(t, WorkNeverWorked, WorkTypes.Lookup("Never_worked"))
	assert.Equal(t, ResidenceUrban, ResidenceTypes.Lookup("Urban"))
	assert.Equal(t, SmokingNever, SmokingStatuses.Lookup("never smoked"))
	assert.Equal(t, SmokingSmokes, SmokingStatuses.Lookup("smokes"))
	assert.Equal(t, SmokingUnknown, SmokingStatuses.Lookup("Unknown"))

	assert.True(t, WorkTypes.Known("children"))
	assert.False(t, WorkTypes.Known("Children"))
	assert.Equal(t, []string{"Male", "Female", "Other"}, Genders.Labels())
	assert.Len(t, SmokingStatuses.Options(), 4)
}
