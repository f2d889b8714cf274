package features

// Category codes expected by the trained model. Every table falls back to its
// zero value for labels it does not know.

type Gender int

const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
	GenderOther  Gender = 2
)

type Hypertension int

const (
	HypertensionNo  Hypertension = 0
	HypertensionYes Hypertension = 1
)

type HeartDisease int

const (
	HeartDiseaseNo  HeartDisease = 0
	HeartDiseaseYes HeartDisease = 1
)

// EverMarried is inverted relative to the yes/no fields: Yes encodes to 0.
type EverMarried int

const (
	EverMarriedYes EverMarried = 0
	EverMarriedNo  EverMarried = 1
)

type WorkType int

const (
	WorkPrivate      WorkType = 0
	WorkSelfEmployed WorkType = 1
	WorkGovtJob      WorkType = 2
	WorkChildren     WorkType = 3
	WorkNeverWorked  WorkType = 4
)

type ResidenceType int

const (
	ResidenceRural ResidenceType = 0
	ResidenceUrban ResidenceType = 1
)

type SmokingStatus int

const (
	SmokingFormerly SmokingStatus = 0
	SmokingNever    SmokingStatus = 1
	SmokingSmokes   SmokingStatus = 2
	SmokingUnknown  SmokingStatus = 3
)

// Option is a single selectable label of a categorical field.
type Option[T ~int] struct {
	Label string
	Code  T
}

// Table maps user-facing labels to codes. Lookups are exact and case-sensitive.
type Table[T ~int] struct {
	Field   string
	Default T
	options []Option[T]
	codes   map[string]T
}

func newTable[T ~int](field string, def T, options ...Option[T]) Table[T] {
	codes := make(map[string]T, len(options))
	for _, opt := range options {
		codes[opt.Label] = opt.Code
	}
	return Table[T]{Field: field, Default: def, options: options, codes: codes}
}

// Lookup returns the code for label, or the table default.
func (t Table[T]) Lookup(label string) T {
	if code, ok := t.codes[label]; ok {
		return code
	}
	return t.Default
}

// Known reports whether label is one of the table's labels.
func (t Table[T]) Known(label string) bool {
	_, ok := t.codes[label]
	return ok
}

// Options returns the labels in presentation order.
func (t Table[T]) Options() []Option[T] {
	return append([]Option[T](nil), t.options...)
}

// Labels returns just the labels in presentation order.
func (t Table[T]) Labels() []string {
	out := make([]string, len(t.options))
	for i, opt := range t.options {
		out[i] = opt.Label
	}
	return out
}

var (
	Genders = newTable("gender", GenderMale,
		Option[Gender]{"Male", GenderMale},
		Option[Gender]{"Female", GenderFemale},
		Option[Gender]{"Other", GenderOther},
	)
	Hypertensions = newTable("hypertension", HypertensionNo,
		Option[Hypertension]{"No", HypertensionNo},
		Option[Hypertension]{"Yes", HypertensionYes},
	)
	HeartDiseases = newTable("heart_disease", HeartDiseaseNo,
		Option[HeartDisease]{"No", HeartDiseaseNo},
		Option[HeartDisease]{"Yes", HeartDiseaseYes},
	)
	// Default is 0, which is the "Yes" code.
	EverMarrieds = newTable("ever_married", EverMarriedYes,
		Option[EverMarried]{"No", EverMarriedNo},
		Option[EverMarried]{"Yes", EverMarriedYes},
	)
	WorkTypes = newTable("work_type", WorkPrivate,
		Option[WorkType]{"Private", WorkPrivate},
		Option[WorkType]{"Self-employed", WorkSelfEmployed},
		Option[WorkType]{"Govt_job", WorkGovtJob},
		Option[WorkType]{"children", WorkChildren},
		Option[WorkType]{"Never_worked", WorkNeverWorked},
	)
	ResidenceTypes = newTable("residence_type", ResidenceRural,
		Option[ResidenceType]{"Urban", ResidenceUrban},
		Option[ResidenceType]{"Rural", ResidenceRural},
	)
	SmokingStatuses = newTable("smoking_status", SmokingFormerly,
		Option[SmokingStatus]{"formerly smoked", SmokingFormerly},
		Option[SmokingStatus]{"never smoked", SmokingNever},
		Option[SmokingStatus]{"smokes", SmokingSmokes},
		Option[SmokingStatus]{"Unknown", SmokingUnknown},
	)
)
