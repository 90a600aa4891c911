package prediction

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"health-risk-predictor/internal/assessment"
)

// PredictRequest is the gateway's view of a submission. Pointer fields make a
// missing key fail validation instead of silently becoming zero.
type PredictRequest struct {
	Gender           *int     `json:"gender" validate:"required,oneof=0 1"`
	Age              *float64 `json:"age" validate:"required,min=0,max=120"`
	Height           *float64 `json:"height" validate:"required,min=0"`
	Weight           *float64 `json:"weight" validate:"required,min=0"`
	SleepDuration    *float64 `json:"sleep_duration" validate:"required,min=0,max=24"`
	PhysicalActivity *float64 `json:"physical_activity" validate:"required"`
	DailySteps       *float64 `json:"daily_steps" validate:"required"`
	StressLevel      *float64 `json:"stress_level" validate:"required,min=1,max=10"`
	QualityOfSleep   *float64 `json:"quality_of_sleep" validate:"required,min=1,max=10"`
	BMICategory      *int     `json:"bmi_category" validate:"required,min=0,max=3"`
	HeartRate        *float64 `json:"heart_rate" validate:"required"`
	SystolicBP       *float64 `json:"systolic_bp" validate:"required"`
	DiastolicBP      *float64 `json:"diastolic_bp" validate:"required"`
	Model            string   `json:"model" validate:"required,oneof=logistic svm forest"`
}

// Input converts a validated request.
func (r PredictRequest) Input() assessment.PredictionInput {
	return assessment.PredictionInput{
		Gender:           assessment.Gender(*r.Gender),
		Age:              *r.Age,
		Height:           *r.Height,
		Weight:           *r.Weight,
		SleepDuration:    *r.SleepDuration,
		PhysicalActivity: *r.PhysicalActivity,
		DailySteps:       *r.DailySteps,
		BMICategory:      assessment.BMICategory(*r.BMICategory),
		StressLevel:      *r.StressLevel,
		QualityOfSleep:   *r.QualityOfSleep,
		HeartRate:        *r.HeartRate,
		SystolicBP:       *r.SystolicBP,
		DiastolicBP:      *r.DiastolicBP,
		Model:            assessment.Model(r.Model),
	}
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages renders validator failures as one sentence per field.
func fieldMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not be greater than %s", field, fe.Param())
	case "oneof":
		if field == "model" {
			return "model must be either logistic, svm, or forest"
		}
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
