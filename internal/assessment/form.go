package assessment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form owns the current step and the record being built. It performs no
// validation; correctness is deferred to Validate. A Form is not safe for
// concurrent use.
type Form struct {
	step  int
	input PredictionInput
}

func NewForm() *Form {
	return &Form{step: 1, input: NewPredictionInput()}
}

func (f *Form) Step() int { return f.step }

func (f *Form) TotalSteps() int { return TotalSteps }

func (f *Form) IsFinalStep() bool { return f.step == TotalSteps }

// CurrentStep returns the catalogue entry for the current page.
func (f *Form) CurrentStep() Step { return Steps[f.step-1] }

// Input returns a copy of the accumulated record.
func (f *Form) Input() PredictionInput { return f.input }

// Advance moves forward one step, stopping at the last one.
func (f *Form) Advance() int {
	if f.step < TotalSteps {
		f.step++
	}
	return f.step
}

// Retreat moves back one step, stopping at the first one.
func (f *Form) Retreat() int {
	if f.step > 1 {
		f.step--
	}
	return f.step
}

// Reset starts over from step 1 with a fresh record.
func (f *Form) Reset() {
	f.step = 1
	f.input = NewPredictionInput()
}

// UpdateField coerces raw into the field's type and stores it. Numeric fields
// treat an empty string as zero and reject NaN and infinities; model is
// stored verbatim. No bounds are
// enforced here. Updating height or weight recomputes bmi_category.
func (f *Form) UpdateField(field Field, raw string) error {
	if field == FieldModel {
		f.input.Model = Model(raw)
		return nil
	}
	if !numericFields[field] {
		// bmi_category is derived and is rejected here too.
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	v, err := parseNumber(raw)
	if err != nil {
		return fmt.Errorf("assessment: field %s: %w", field, err)
	}

	switch field {
	case FieldGender:
		f.input.Gender = Gender(v)
	case FieldAge:
		f.input.Age = v
	case FieldHeight:
		f.input.Height = v
	case FieldWeight:
		f.input.Weight = v
	case FieldSleepDuration:
		f.input.SleepDuration = v
	case FieldPhysicalActivity:
		f.input.PhysicalActivity = v
	case FieldDailySteps:
		f.input.DailySteps = v
	case FieldStressLevel:
		f.input.StressLevel = v
	case FieldQualityOfSleep:
		f.input.QualityOfSleep = v
	case FieldHeartRate:
		f.input.HeartRate = v
	case FieldSystolicBP:
		f.input.SystolicBP = v
	case FieldDiastolicBP:
		f.input.DiastolicBP = v
	}

	if field == FieldHeight || field == FieldWeight {
		f.RecomputeDerived()
	}
	return nil
}

// RecomputeDerived refreshes bmi_category from height and weight. The category
// is kept as is while either measurement is missing.
func (f *Form) RecomputeDerived() {
	bmi, ok := BMI(f.input.Height, f.input.Weight)
	if !ok {
		return
	}
	f.input.BMICategory = CategoryForBMI(bmi)
}

// BMI returns the current BMI rounded to one decimal for display.
func (f *Form) BMI() (float64, bool) {
	bmi, ok := BMI(f.input.Height, f.input.Weight)
	if !ok {
		return 0, false
	}
	return roundTo(bmi, 1), true
}

var numericFields = map[Field]bool{
	FieldGender:           true,
	FieldAge:              true,
	FieldHeight:           true,
	FieldWeight:           true,
	FieldSleepDuration:    true,
	FieldPhysicalActivity: true,
	FieldDailySteps:       true,
	FieldStressLevel:      true,
	FieldQualityOfSleep:   true,
	FieldHeartRate:        true,
	FieldSystolicBP:       true,
	FieldDiastolicBP:      true,
}

func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
