package prediction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"health-risk-predictor/internal/assessment"
	"health-risk-predictor/internal/inference"
	"health-risk-predictor/internal/recommendation"
)

type Service interface {
	Predict(ctx context.Context, in assessment.PredictionInput) (assessment.PredictionResult, error)
}

type service struct {
	predictor inference.Predictor
	logger    *slog.Logger
}

func NewService(predictor inference.Predictor, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{predictor: predictor, logger: logger}
}

// Predict asks the model service for a risk estimate and attaches advice
// derived from the submitted answers.
func (s *service) Predict(ctx context.Context, in assessment.PredictionInput) (assessment.PredictionResult, error) {
	id := uuid.New()
	log := s.logger.With("prediction_id", id.String(), "model", in.Model)

	start := time.Now()
	out, err := s.predictor.Predict(ctx, in.Model, in)
	if err != nil {
		log.Error("inference failed", "error", err, "elapsed", time.Since(start))
		return assessment.PredictionResult{}, err
	}

	modelUsed := out.ModelUsed
	if !modelUsed.Valid() {
		modelUsed = in.Model
	}

	res := assessment.PredictionResult{
		ModelUsed:          modelUsed,
		RiskPrediction:     out.RiskPrediction,
		RiskProbability:    out.RiskProbability,
		Status:             recommendation.Sanitize(out.Status),
		Recommendations:    recommendation.Evaluate(in),
		RiskRecommendation: recommendation.Summarize(out.RiskProbability),
	}

	log.Info("prediction completed",
		"risk_prediction", res.RiskPrediction,
		"score", res.RiskRecommendation.Score,
		"elapsed", time.Since(start),
	)
	return res, nil
}
