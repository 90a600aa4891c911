package inference_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"health-risk-predictor/internal/assessment"
	"health-risk-predictor/internal/inference"
)

func sampleInput() assessment.PredictionInput {
	return assessment.PredictionInput{
		Gender:           assessment.GenderFemale,
		Age:              24,
		Height:           168,
		Weight:           82,
		SleepDuration:    5.5,
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

func TestClient_Predict(t *testing.T) {
	var (
		gotPath string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model_used":       "svm",
			"risk_prediction":  1,
			"risk_probability": 85.5,
			"status":           "High Risk",
		})
	}))
	defer srv.Close()

	c := inference.NewClient(srv.URL+"/", time.Second)
	got, err := c.Predict(context.Background(), assessment.ModelSVM, sampleInput())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if gotPath != "/predict/svm" {
		t.Fatalf("path = %q, want /predict/svm", gotPath)
	}
	wantBody := map[string]any{
		"gender":            0.0,
		"age":               24.0,
		"sleep_duration":    5.5,
		"quality_of_sleep":  4.0,
		"physical_activity": 100.0,
		"stress_level":      8.0,
		"bmi_category":      2.0,
		"heart_rate":        75.0,
		"daily_steps":       8000.0,
		"systolic_bp":       120.0,
		"diastolic_bp":      80.0,
	}
	if diff := cmp.Diff(wantBody, gotBody); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
	want := &inference.Outcome{
		ModelUsed:       assessment.ModelSVM,
		RiskPrediction:  1,
		RiskProbability: 85.5,
		Status:          "High Risk",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("outcome mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_PredictErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		wantErr error
	}{
		{
			name: "unknown model",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"detail":"Model not found"}`, http.StatusNotFound)
			},
			wantErr: inference.ErrUpstream,
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("nope"))
			},
			wantErr: inference.ErrUpstream,
		},
		{
			name: "slow model",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			wantErr: inference.ErrTimeout,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			timeout := tc.timeout
			if timeout == 0 {
				timeout = time.Second
			}
			c := inference.NewClient(srv.URL, timeout)
			_, err := c.Predict(context.Background(), assessment.ModelForest, sampleInput())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
