package assessment_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"health-risk-predictor/internal/assessment"
)

func TestCategoryForBMI(t *testing.T) {
	cases := []struct {
		name   string
		height float64
		weight float64
		want   assessment.BMICategory
	}{
		{name: "overweight", height: 168, weight: 82, want: assessment.BMIOverweight},
		{name: "underweight", height: 168, weight: 50, want: assessment.BMIUnderweight},
		{name: "normal", height: 180, weight: 70, want: assessment.BMINormal},
		{name: "obese", height: 160, weight: 90, want: assessment.BMIObese},
		{name: "lower bound of normal", height: 100, weight: 18.5, want: assessment.BMINormal},
		{name: "lower bound of obese", height: 100, weight: 30, want: assessment.BMIObese},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bmi, ok := assessment.BMI(tc.height, tc.weight)
			if !ok {
				t.Fatalf("BMI(%v, %v) reported missing measurements", tc.height, tc.weight)
			}
			if got := assessment.CategoryForBMI(bmi); got != tc.want {
				t.Fatalf("category for bmi %.2f = %v, want %v", bmi, got, tc.want)
			}
		})
	}
}

func TestForm_BMICategoryFollowsHeightAndWeight(t *testing.T) {
	f := assessment.NewForm()
	mustUpdate(t, f, assessment.FieldHeight, "168")
	mustUpdate(t, f, assessment.FieldWeight, "82")

	if got := f.Input().BMICategory; got != assessment.BMIOverweight {
		t.Fatalf("bmi_category = %v, want overweight (2)", got)
	}
	if bmi, _ := f.BMI(); bmi != 29.1 {
		t.Fatalf("display bmi = %v, want 29.1", bmi)
	}

	mustUpdate(t, f, assessment.FieldWeight, "50")
	if got := f.Input().BMICategory; got != assessment.BMIUnderweight {
		t.Fatalf("bmi_category = %v, want underweight (0)", got)
	}
}

func TestForm_RecomputeDerivedIsIdempotent(t *testing.T) {
	f := assessment.NewForm()
	mustUpdate(t, f, assessment.FieldHeight, "168")
	mustUpdate(t, f, assessment.FieldWeight, "82")

	f.RecomputeDerived()
	first := f.Input().BMICategory
	f.RecomputeDerived()
	second := f.Input().BMICategory

	if first != second {
		t.Fatalf("recompute changed category: %v then %v", first, second)
	}
}

func TestForm_MissingMeasurementKeepsCategory(t *testing.T) {
	f := assessment.NewForm()
	mustUpdate(t, f, assessment.FieldHeight, "168")
	mustUpdate(t, f, assessment.FieldWeight, "82")
	mustUpdate(t, f, assessment.FieldHeight, "")

	if got := f.Input().BMICategory; got != assessment.BMIOverweight {
		t.Fatalf("bmi_category = %v, want previous value overweight", got)
	}
}

func TestForm_UpdateFieldCoercion(t *testing.T) {
	f := assessment.NewForm()
	mustUpdate(t, f, assessment.FieldAge, " 24 ")
	mustUpdate(t, f, assessment.FieldSleepDuration, "5.5")
	mustUpdate(t, f, assessment.FieldStressLevel, "42") // not clamped
	mustUpdate(t, f, assessment.FieldHeartRate, "75")
	mustUpdate(t, f, assessment.FieldHeartRate, "")
	mustUpdate(t, f, assessment.FieldGender, "1")
	mustUpdate(t, f, assessment.FieldModel, "svm")

	want := assessment.NewPredictionInput()
	want.Age = 24
	want.SleepDuration = 5.5
	want.StressLevel = 42
	want.Gender = assessment.GenderMale
	want.Model = assessment.ModelSVM

	if diff := cmp.Diff(want, f.Input()); diff != "" {
		t.Fatalf("input mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_UpdateFieldRejections(t *testing.T) {
	f := assessment.NewForm()
	before := f.Input()

	if err := f.UpdateField(assessment.FieldBMICategory, "3"); !errors.Is(err, assessment.ErrUnknownField) {
		t.Fatalf("bmi_category update error = %v, want ErrUnknownField", err)
	}
	if err := f.UpdateField("blood_type", "0"); !errors.Is(err, assessment.ErrUnknownField) {
		t.Fatalf("unknown field error = %v, want ErrUnknownField", err)
	}
	if err := f.UpdateField(assessment.FieldAge, "twenty"); err == nil {
		t.Fatalf("expected parse error for non-numeric age")
	}
	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "+inf", "1e400"} {
		if err := f.UpdateField(assessment.FieldAge, raw); err == nil {
			t.Fatalf("UpdateField(age, %q) accepted a non-finite value", raw)
		}
	}

	if diff := cmp.Diff(before, f.Input()); diff != "" {
		t.Fatalf("rejected updates changed input (-want +got):\n%s", diff)
	}
}

func TestForm_ModelStoredVerbatim(t *testing.T) {
	f := assessment.NewForm()
	mustUpdate(t, f, assessment.FieldModel, "")
	if got := f.Input().Model; got != "" {
		t.Fatalf("model = %q, want empty", got)
	}
}

func TestForm_StepNavigationClamps(t *testing.T) {
	f := assessment.NewForm()
	if f.Step() != 1 {
		t.Fatalf("initial step = %d, want 1", f.Step())
	}
	if got := f.Retreat(); got != 1 {
		t.Fatalf("retreat from 1 = %d, want 1", got)
	}

	var steps []int
	for i := 0; i < 5; i++ {
		steps = append(steps, f.Advance())
	}
	if diff := cmp.Diff([]int{2, 3, 4, 4, 4}, steps); diff != "" {
		t.Fatalf("advance steps mismatch (-want +got):\n%s", diff)
	}
	if !f.IsFinalStep() {
		t.Fatalf("expected final step after advancing")
	}
	if got := f.CurrentStep().Title; got != "Model Selection" {
		t.Fatalf("final step title = %q", got)
	}

	if got := f.Retreat(); got != 3 {
		t.Fatalf("retreat from 4 = %d, want 3", got)
	}
}

func TestForm_Reset(t *testing.T) {
	f := assessment.NewForm()
	mustUpdate(t, f, assessment.FieldAge, "30")
	f.Advance()
	f.Advance()

	f.Reset()

	if f.Step() != 1 {
		t.Fatalf("step after reset = %d, want 1", f.Step())
	}
	if diff := cmp.Diff(assessment.NewPredictionInput(), f.Input()); diff != "" {
		t.Fatalf("input after reset mismatch (-want +got):\n%s", diff)
	}
}

func mustUpdate(t *testing.T, f *assessment.Form, field assessment.Field, raw string) {
	t.Helper()
	if err := f.UpdateField(field, raw); err != nil {
		t.Fatalf("update %s=%q: %v", field, raw, err)
	}
}
