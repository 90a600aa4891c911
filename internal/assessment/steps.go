package assessment

// Field names a PredictionInput member by its wire key.
type Field string

const (
	FieldGender           Field = "gender"
	FieldAge              Field = "age"
	FieldHeight           Field = "height"
	FieldWeight           Field = "weight"
	FieldSleepDuration    Field = "sleep_duration"
	FieldPhysicalActivity Field = "physical_activity"
	FieldDailySteps       Field = "daily_steps"
	FieldBMICategory      Field = "bmi_category"
	FieldStressLevel      Field = "stress_level"
	FieldQualityOfSleep   Field = "quality_of_sleep"
	FieldHeartRate        Field = "heart_rate"
	FieldSystolicBP       Field = "systolic_bp"
	FieldDiastolicBP      Field = "diastolic_bp"
	FieldModel            Field = "model"
)

// FieldSpec describes how an input widget should present a field. Min and Max
// are widget bounds only; the controller never clamps.
type FieldSpec struct {
	Field   Field
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Options []string // indexed choices for categorical fields
}

// Step groups the fields collected on one page of the assessment.
type Step struct {
	ID          int
	ShortTitle  string
	Title       string
	Description string
	Fields      []FieldSpec
}

var Steps = []Step{
	{
		ID:          1,
		ShortTitle:  "01. Identity",
		Title:       "Demographics",
		Description: "Basic biological identity factors.",
		Fields: []FieldSpec{
			{Field: FieldGender, Label: "Gender", Options: []string{"Female", "Male"}},
			{Field: FieldAge, Label: "Age", Unit: "years", Min: 1, Max: 120},
			{Field: FieldHeight, Label: "Height", Unit: "cm", Min: 50, Max: 250},
			{Field: FieldWeight, Label: "Weight", Unit: "kg", Min: 10, Max: 300},
		},
	},
	{
		ID:          2,
		ShortTitle:  "02. Lifestyle",
		Title:       "Habits & Behavior",
		Description: "Daily routines and stress factors.",
		Fields: []FieldSpec{
			{Field: FieldSleepDuration, Label: "Sleep Duration", Unit: "hours", Min: 0, Max: 24},
			{Field: FieldPhysicalActivity, Label: "Physical Activity", Unit: "minutes/day", Min: 0, Max: 1440},
			{Field: FieldDailySteps, Label: "Daily Steps", Unit: "steps", Min: 0, Max: 100000},
			{Field: FieldStressLevel, Label: "Stress Level", Unit: "1-10", Min: 1, Max: 10},
		},
	},
	{
		ID:          3,
		ShortTitle:  "03. Vitals",
		Title:       "Physical Status",
		Description: "Measurable physiological outcomes.",
		Fields: []FieldSpec{
			{Field: FieldQualityOfSleep, Label: "Quality of Sleep", Unit: "1-10", Min: 1, Max: 10},
			{Field: FieldHeartRate, Label: "Heart Rate", Unit: "bpm", Min: 30, Max: 220},
			{Field: FieldSystolicBP, Label: "Systolic BP", Unit: "mmHg", Min: 60, Max: 250},
			{Field: FieldDiastolicBP, Label: "Diastolic BP", Unit: "mmHg", Min: 30, Max: 150},
		},
	},
	{
		ID:          4,
		ShortTitle:  "04. Analysis",
		Title:       "Model Selection",
		Description: "Choose the algorithm for prediction.",
		Fields: []FieldSpec{
			{Field: FieldModel, Label: "Prediction Model", Options: []string{string(ModelLogistic), string(ModelSVM), string(ModelForest)}},
		},
	},
}

// TotalSteps is the number of pages in the assessment.
var TotalSteps = len(Steps)
