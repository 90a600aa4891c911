// Package recommendation turns a submitted assessment and the model's risk
// probability into category advice and a headline risk summary.
package recommendation

import (
	"math"

	"health-risk-predictor/internal/assessment"
)

type advice struct {
	Title   string
	Message string
}

var catalog = map[assessment.RecommendationCategory]map[assessment.RecommendationStatus]advice{
	assessment.CategorySleep: {
		assessment.StatusDanger: {
			Title:   "Sleep Deficit",
			Message: "You are sleeping too little or too poorly. Aim for 7-9 hours with a fixed bedtime and no screens in the last hour.",
		},
		assessment.StatusWarning: {
			Title:   "Improve Sleep Quality",
			Message: "Your sleep is slightly below the recommended range. A consistent schedule and a darker room usually help.",
		},
		assessment.StatusSuccess: {
			Title:   "Healthy Sleep",
			Message: "Your sleep duration and quality are in a healthy range. Keep your routine.",
		},
	},
	assessment.CategoryMental: {
		assessment.StatusDanger: {
			Title:   "High Stress Level",
			Message: "Your stress level is high. Plan daily breaks, try breathing exercises and consider talking to a counselor.",
		},
		assessment.StatusWarning: {
			Title:   "Moderate Stress",
			Message: "Stress is building up. Short walks and time away from study or work can keep it under control.",
		},
		assessment.StatusSuccess: {
			Title:   "Balanced Mind",
			Message: "Your stress level is well managed.",
		},
	},
	assessment.CategoryPhysical: {
		assessment.StatusDanger: {
			Title:   "Check Your Vitals",
			Message: "Your blood pressure or resting heart rate is elevated. Please consult a doctor for a proper check-up.",
		},
		assessment.StatusWarning: {
			Title:   "Increase Physical Activity",
			Message: "Your weight or activity level needs attention. Aim for at least 30 minutes of movement a day.",
		},
		assessment.StatusSuccess: {
			Title:   "Good Physical Condition",
			Message: "Your vitals and activity level look healthy.",
		},
	},
	assessment.CategoryLifestyle: {
		assessment.StatusDanger: {
			Title:   "Sedentary Lifestyle",
			Message: "You walk less than 5000 steps a day. Take the stairs and add short walks between tasks.",
		},
		assessment.StatusWarning: {
			Title:   "Move a Little More",
			Message: "You are close to the daily target. Try to reach 8000 steps.",
		},
		assessment.StatusSuccess: {
			Title:   "Active Lifestyle",
			Message: "You reach a healthy number of daily steps.",
		},
	},
}

var colors = map[assessment.RecommendationStatus]string{
	assessment.StatusSuccess: "green",
	assessment.StatusWarning: "yellow",
	assessment.StatusDanger:  "red",
}

func ColorFor(s assessment.RecommendationStatus) string {
	return colors[s]
}

// Evaluate returns one recommendation per category, in the order sleep,
// mental, physical, lifestyle.
func Evaluate(in assessment.PredictionInput) []assessment.Recommendation {
	return []assessment.Recommendation{
		build(assessment.CategorySleep, sleepStatus(in)),
		build(assessment.CategoryMental, mentalStatus(in)),
		build(assessment.CategoryPhysical, physicalStatus(in)),
		build(assessment.CategoryLifestyle, lifestyleStatus(in)),
	}
}

func build(c assessment.RecommendationCategory, s assessment.RecommendationStatus) assessment.Recommendation {
	a := catalog[c][s]
	return assessment.Recommendation{
		Category: c,
		Status:   s,
		Title:    a.Title,
		Message:  a.Message,
		Color:    ColorFor(s),
	}
}

func sleepStatus(in assessment.PredictionInput) assessment.RecommendationStatus {
	switch {
	case in.SleepDuration < 6 || in.QualityOfSleep <= 4:
		return assessment.StatusDanger
	case in.SleepDuration < 7 || in.QualityOfSleep <= 6:
		return assessment.StatusWarning
	default:
		return assessment.StatusSuccess
	}
}

func mentalStatus(in assessment.PredictionInput) assessment.RecommendationStatus {
	switch {
	case in.StressLevel >= 8:
		return assessment.StatusDanger
	case in.StressLevel >= 6:
		return assessment.StatusWarning
	default:
		return assessment.StatusSuccess
	}
}

func physicalStatus(in assessment.PredictionInput) assessment.RecommendationStatus {
	switch {
	case in.SystolicBP >= 140 || in.DiastolicBP >= 90 || in.HeartRate > 100:
		return assessment.StatusDanger
	case in.BMICategory >= assessment.BMIOverweight || in.PhysicalActivity < 30:
		return assessment.StatusWarning
	default:
		return assessment.StatusSuccess
	}
}

func lifestyleStatus(in assessment.PredictionInput) assessment.RecommendationStatus {
	switch {
	case in.DailySteps < 5000:
		return assessment.StatusDanger
	case in.DailySteps < 8000:
		return assessment.StatusWarning
	default:
		return assessment.StatusSuccess
	}
}

// Score rounds a percentage probability, as reported by the model service,
// to a whole number in [0,100].
func Score(probability float64) float64 {
	if math.IsNaN(probability) {
		return 0
	}
	return math.Round(min(max(probability, 0), 100))
}

func Summarize(probability float64) assessment.RiskRecommendation {
	score := Score(probability)
	switch {
	case score >= 70:
		return assessment.RiskRecommendation{
			Title:   "High Risk Detected",
			Status:  assessment.StatusDanger,
			Score:   score,
			Message: "Your answers point to a high health risk. Follow the recommendations below and consider seeing a doctor.",
			Icon:    "alert-triangle",
		}
	case score >= 40:
		return assessment.RiskRecommendation{
			Title:   "Elevated Risk",
			Status:  assessment.StatusWarning,
			Score:   score,
			Message: "Some of your habits raise your health risk. Small changes can make a difference.",
			Icon:    "alert-triangle",
		}
	default:
		return assessment.RiskRecommendation{
			Title:   "Low Risk",
			Status:  assessment.StatusSuccess,
			Score:   score,
			Message: "Your current lifestyle indicates a low health risk. Keep it up.",
			Icon:    "shield-check",
		}
	}
}
