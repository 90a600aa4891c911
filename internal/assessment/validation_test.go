package assessment_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"health-risk-predictor/internal/assessment"
)

func validInput() assessment.PredictionInput {
	return assessment.PredictionInput{
		Gender:           assessment.GenderFemale,
		Age:              24,
		Height:           168,
		Weight:           82,
		SleepDuration:    5,
		PhysicalActivity: 100,
		DailySteps:       8000,
		BMICategory:      assessment.BMIOverweight,
		StressLevel:      8,
		QualityOfSleep:   4,
		HeartRate:        75,
		SystolicBP:       120,
		DiastolicBP:      80,
		Model:            assessment.ModelForest,
	}
}

func TestValidate_ValidInput(t *testing.T) {
	got := assessment.Validate(validInput())
	want := assessment.ValidationResult{Success: true, Errors: []string{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("validation result mismatch (-want +got):\n%s", diff)
	}
	if err := got.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
}

func TestValidate_ReportsEveryRuleInOrder(t *testing.T) {
	in := assessment.PredictionInput{Age: -1, Model: ""}

	got := assessment.Validate(in)

	want := []string{
		"Please enter a valid Age.",
		"Please enter a valid Height.",
		"Please enter a valid Weight.",
		"Sleep duration must be greater than 0.",
		"Please enter a valid Heart Rate.",
		"Please enter a valid Systolic BP.",
		"Please enter a valid Diastolic BP.",
		"Please select a Prediction Model.",
	}
	if got.Success {
		t.Fatalf("expected failure for empty input")
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_SingleRuleFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*assessment.PredictionInput)
		want   string
	}{
		{"age", func(in *assessment.PredictionInput) { in.Age = 0 }, "Please enter a valid Age."},
		{"height", func(in *assessment.PredictionInput) { in.Height = -5 }, "Please enter a valid Height."},
		{"weight", func(in *assessment.PredictionInput) { in.Weight = 0 }, "Please enter a valid Weight."},
		{"sleep", func(in *assessment.PredictionInput) { in.SleepDuration = 0 }, "Sleep duration must be greater than 0."},
		{"heart rate", func(in *assessment.PredictionInput) { in.HeartRate = 0 }, "Please enter a valid Heart Rate."},
		{"systolic", func(in *assessment.PredictionInput) { in.SystolicBP = 0 }, "Please enter a valid Systolic BP."},
		{"diastolic", func(in *assessment.PredictionInput) { in.DiastolicBP = -80 }, "Please enter a valid Diastolic BP."},
		{"age NaN", func(in *assessment.PredictionInput) { in.Age = math.NaN() }, "Please enter a valid Age."},
		{"height +Inf", func(in *assessment.PredictionInput) { in.Height = math.Inf(1) }, "Please enter a valid Height."},
		{"sleep NaN", func(in *assessment.PredictionInput) { in.SleepDuration = math.NaN() }, "Sleep duration must be greater than 0."},
		{"diastolic -Inf", func(in *assessment.PredictionInput) { in.DiastolicBP = math.Inf(-1) }, "Please enter a valid Diastolic BP."},
		{"model unset", func(in *assessment.PredictionInput) { in.Model = "" }, "Please select a Prediction Model."},
		{"model unknown", func(in *assessment.PredictionInput) { in.Model = "xgboost" }, "Please select a Prediction Model."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			got := assessment.Validate(in)
			if got.Success {
				t.Fatalf("expected failure")
			}
			if diff := cmp.Diff([]string{tc.want}, got.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}

			var verr *assessment.ValidationError
			if !errors.As(got.Err(), &verr) {
				t.Fatalf("Err() = %v, want *ValidationError", got.Err())
			}
		})
	}
}

func TestValidate_RangesAreNotChecked(t *testing.T) {
	in := validInput()
	in.StressLevel = 11
	in.QualityOfSleep = 0

	if got := assessment.Validate(in); !got.Success {
		t.Fatalf("out-of-range widget values rejected: %v", got.Errors)
	}
}
