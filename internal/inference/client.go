package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"health-risk-predictor/internal/assessment"
)

const defaultTimeout = 5 * time.Second

var (
	ErrTimeout  = errors.New("inference: request timed out")
	ErrUpstream = errors.New("inference: upstream error")
)

// Outcome is the raw answer of the model service.
type Outcome struct {
	ModelUsed       assessment.Model `json:"model_used"`
	RiskPrediction  int              `json:"risk_prediction"`
	RiskProbability float64          `json:"risk_probability"`
	Status          string           `json:"status"`
}

type Predictor interface {
	Predict(ctx context.Context, model assessment.Model, in assessment.PredictionInput) (*Outcome, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// predictRequest mirrors the model service schema, which takes whole numbers
// for everything except sleep duration.
type predictRequest struct {
	Gender           int     `json:"gender"`
	Age              int     `json:"age"`
	SleepDuration    float64 `json:"sleep_duration"`
	QualityOfSleep   int     `json:"quality_of_sleep"`
	PhysicalActivity int     `json:"physical_activity"`
	StressLevel      int     `json:"stress_level"`
	BMICategory      int     `json:"bmi_category"`
	HeartRate        int     `json:"heart_rate"`
	DailySteps       int     `json:"daily_steps"`
	SystolicBP       int     `json:"systolic_bp"`
	DiastolicBP      int     `json:"diastolic_bp"`
}

func newPredictRequest(in assessment.PredictionInput) predictRequest {
	round := func(v float64) int { return int(math.Round(v)) }
	return predictRequest{
		Gender:           int(in.Gender),
		Age:              round(in.Age),
		SleepDuration:    in.SleepDuration,
		QualityOfSleep:   round(in.QualityOfSleep),
		PhysicalActivity: round(in.PhysicalActivity),
		StressLevel:      round(in.StressLevel),
		BMICategory:      int(in.BMICategory),
		HeartRate:        round(in.HeartRate),
		DailySteps:       round(in.DailySteps),
		SystolicBP:       round(in.SystolicBP),
		DiastolicBP:      round(in.DiastolicBP),
	}
}

func (c *Client) Predict(ctx context.Context, model assessment.Model, in assessment.PredictionInput) (*Outcome, error) {
	endpoint := fmt.Sprintf("%s/predict/%s", c.baseURL, url.PathEscape(string(model)))

	jsonBody, err := json.Marshal(newPredictRequest(in))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: %s - %s", ErrUpstream, resp.Status, strings.TrimSpace(string(body)))
	}

	var out Outcome
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if out.ModelUsed == "" {
		out.ModelUsed = model
	}
	return &out, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
