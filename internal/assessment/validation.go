package assessment

import "math"

// ValidationResult is produced fresh on every validation attempt.
type ValidationResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// Err converts a failed result into a *ValidationError, or nil on success.
func (r ValidationResult) Err() error {
	if r.Success {
		return nil
	}
	return &ValidationError{Messages: append([]string(nil), r.Errors...)}
}

// Validate checks the record before submission. Every rule is evaluated so
// all defects are reported in one pass, in a fixed order.
func Validate(in PredictionInput) ValidationResult {
	errs := []string{}

	if !positive(in.Age) {
		errs = append(errs, "Please enter a valid Age.")
	}
	if !positive(in.Height) {
		errs = append(errs, "Please enter a valid Height.")
	}
	if !positive(in.Weight) {
		errs = append(errs, "Please enter a valid Weight.")
	}
	if !positive(in.SleepDuration) {
		errs = append(errs, "Sleep duration must be greater than 0.")
	}
	if !positive(in.HeartRate) {
		errs = append(errs, "Please enter a valid Heart Rate.")
	}
	if !positive(in.SystolicBP) {
		errs = append(errs, "Please enter a valid Systolic BP.")
	}
	if !positive(in.DiastolicBP) {
		errs = append(errs, "Please enter a valid Diastolic BP.")
	}
	if !in.Model.Valid() {
		errs = append(errs, "Please select a Prediction Model.")
	}

	return ValidationResult{
		Success: len(errs) == 0,
		Errors:  errs,
	}
}

// positive is false for NaN, infinities and values <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
