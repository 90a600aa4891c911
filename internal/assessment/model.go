package assessment

import "slices"

// Model selects which classifier the inference service runs.
type Model string

const (
	ModelLogistic Model = "logistic"
	ModelSVM      Model = "svm"
	ModelForest   Model = "forest"
)

// Models lists the selectable classifiers in display order.
var Models = []Model{ModelLogistic, ModelSVM, ModelForest}

// Valid reports whether m is one of the known classifiers.
func (m Model) Valid() bool {
	return slices.Contains(Models, m)
}

// Label is the human-readable classifier name.
func (m Model) Label() string {
	switch m {
	case ModelLogistic:
		return "Logistic Regression"
	case ModelSVM:
		return "SVM"
	case ModelForest:
		return "Random Forest"
	default:
		return string(m)
	}
}

// Gender is the encoded sex the models were trained on.
type Gender int

const (
	GenderFemale Gender = 0
	GenderMale   Gender = 1
)

// PredictionInput is the record accumulated across the assessment steps and
// posted as-is to the inference gateway.
type PredictionInput struct {
	// Identity
	Gender Gender  `json:"gender"`
	Age    float64 `json:"age"`
	Height float64 `json:"height"` // cm
	Weight float64 `json:"weight"` // kg

	// Lifestyle
	SleepDuration    float64 `json:"sleep_duration"`    // hours
	PhysicalActivity float64 `json:"physical_activity"` // minutes per day
	DailySteps       float64 `json:"daily_steps"`

	// Derived from height and weight, never entered directly.
	BMICategory BMICategory `json:"bmi_category"`

	// Vitals
	StressLevel    float64 `json:"stress_level"`     // 1-10
	QualityOfSleep float64 `json:"quality_of_sleep"` // 1-10
	HeartRate      float64 `json:"heart_rate"`       // bpm
	SystolicBP     float64 `json:"systolic_bp"`
	DiastolicBP    float64 `json:"diastolic_bp"`

	Model Model `json:"model"`
}

// NewPredictionInput returns the record a fresh workflow starts with.
func NewPredictionInput() PredictionInput {
	return PredictionInput{Model: ModelForest}
}

// RecommendationCategory groups advice by area of life.
type RecommendationCategory string

const (
	CategorySleep     RecommendationCategory = "Sleep"
	CategoryMental    RecommendationCategory = "Mental"
	CategoryPhysical  RecommendationCategory = "Physical"
	CategoryLifestyle RecommendationCategory = "Lifestyle"
)

// RecommendationStatus grades a category from fine to urgent.
type RecommendationStatus string

const (
	StatusSuccess RecommendationStatus = "success"
	StatusWarning RecommendationStatus = "warning"
	StatusDanger  RecommendationStatus = "danger"
)

// Recommendation is one piece of categorized advice.
type Recommendation struct {
	Category RecommendationCategory `json:"category" validate:"required"`
	Status   RecommendationStatus   `json:"status" validate:"required"`
	Title    string                 `json:"title" validate:"required"`
	Message  string                 `json:"message"`
	Color    string                 `json:"color,omitempty"`
}

// RiskRecommendation is the single highlighted summary shown above the
// categorized recommendations.
type RiskRecommendation struct {
	Title   string               `json:"title" validate:"required"`
	Status  RecommendationStatus `json:"status" validate:"required"`
	Score   float64              `json:"score"`
	Message string               `json:"message"`
	Icon    string               `json:"icon,omitempty"`
}

// PredictionResult is the payload returned by the gateway for one submission.
type PredictionResult struct {
	ModelUsed          Model              `json:"model_used"`
	RiskPrediction     int                `json:"risk_prediction"`
	RiskProbability    float64            `json:"risk_probability"`
	Status             string             `json:"status"`
	Recommendations    []Recommendation   `json:"recommendations"`
	RiskRecommendation RiskRecommendation `json:"riskRecommendation"`
}
