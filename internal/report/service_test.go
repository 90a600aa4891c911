package report_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"health-risk-predictor/internal/assessment"
	"health-risk-predictor/internal/report"
)

func sampleResult() assessment.PredictionResult {
	return assessment.PredictionResult{
		ModelUsed:       assessment.ModelForest,
		RiskPrediction:  1,
		RiskProbability: 85.5,
		Status:          "High Risk",
		Recommendations: []assessment.Recommendation{
			{Category: assessment.CategorySleep, Status: assessment.StatusDanger, Title: "Sleep Deficit", Message: "Sleep more.", Color: "red"},
		},
		RiskRecommendation: assessment.RiskRecommendation{
			Title: "High Risk Detected", Status: assessment.StatusDanger, Score: 86, Message: "See a doctor.", Icon: "alert-triangle",
		},
	}
}

// generatorOrSkip needs a DejaVu font on the host.
func generatorOrSkip(t *testing.T) *report.Generator {
	t.Helper()
	for _, p := range report.DefaultFontPaths {
		if _, err := os.Stat(p); err == nil {
			return report.NewGenerator(p)
		}
	}
	t.Skip("DejaVuSans.ttf not installed")
	return nil
}

type recordingSender struct {
	chatID   int64
	data     []byte
	fileName string
	caption  string
	text     string
	err      error
}

func (r *recordingSender) SendDocument(_ context.Context, chatID int64, data []byte, fileName, caption string) error {
	r.chatID, r.data, r.fileName, r.caption = chatID, data, fileName, caption
	return r.err
}

func (r *recordingSender) SendMessage(_ context.Context, chatID int64, text string) error {
	r.chatID, r.text = chatID, text
	return r.err
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	if got := report.FileName(sampleResult(), at); got != "health_report_forest_20240309_140507.pdf" {
		t.Fatalf("file name = %q", got)
	}
}

func TestGenerator_MissingFont(t *testing.T) {
	g := report.NewGenerator("/nonexistent/font.ttf")
	if _, err := g.Render(sampleResult()); !errors.Is(err, report.ErrFontNotFound) {
		t.Fatalf("error = %v, want ErrFontNotFound", err)
	}
}

func TestGenerator_Render(t *testing.T) {
	g := generatorOrSkip(t)
	data, err := g.Render(sampleResult())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestService_ShareDisabled(t *testing.T) {
	cases := []struct {
		name   string
		sender report.ChatSender
		chatID int64
	}{
		{"no sender", nil, 42},
		{"no chat", &recordingSender{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := report.NewService(report.NewGenerator(), tc.sender, tc.chatID, nil)
			if svc.SharingEnabled() {
				t.Fatalf("sharing reported enabled")
			}
			if err := svc.Share(context.Background(), sampleResult()); !errors.Is(err, report.ErrSharingDisabled) {
				t.Fatalf("error = %v, want ErrSharingDisabled", err)
			}
		})
	}
}

func TestService_Share(t *testing.T) {
	g := generatorOrSkip(t)
	sender := &recordingSender{}
	svc := report.NewService(g, sender, 42, nil)

	if err := svc.Share(context.Background(), sampleResult()); err != nil {
		t.Fatalf("share: %v", err)
	}
	if sender.chatID != 42 || !bytes.HasPrefix(sender.data, []byte("%PDF-")) {
		t.Fatalf("unexpected delivery: chat=%d bytes=%d", sender.chatID, len(sender.data))
	}
	if sender.caption != "Random Forest: High Risk Detected (86%)" {
		t.Fatalf("caption = %q", sender.caption)
	}
}

func TestSummary(t *testing.T) {
	want := "Random Forest: High Risk Detected (86%)\n" +
		"Status: High Risk\n" +
		"See a doctor.\n" +
		"[Sleep] Sleep Deficit: Sleep more."
	if diff := cmp.Diff(want, report.Summary(sampleResult())); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestService_ShareFallsBackToText(t *testing.T) {
	sender := &recordingSender{}
	svc := report.NewService(report.NewGenerator("/nonexistent/font.ttf"), sender, 42, nil)

	if err := svc.Share(context.Background(), sampleResult()); err != nil {
		t.Fatalf("share: %v", err)
	}
	if sender.data != nil {
		t.Fatalf("document sent without a rendered report")
	}
	if sender.chatID != 42 || sender.text != report.Summary(sampleResult()) {
		t.Fatalf("unexpected text delivery: chat=%d text=%q", sender.chatID, sender.text)
	}
}

func TestService_ShareFallbackFailure(t *testing.T) {
	sendErr := errors.New("telegram down")
	sender := &recordingSender{err: sendErr}
	svc := report.NewService(report.NewGenerator("/nonexistent/font.ttf"), sender, 42, nil)

	err := svc.Share(context.Background(), sampleResult())
	if !errors.Is(err, report.ErrFontNotFound) || !errors.Is(err, sendErr) {
		t.Fatalf("error = %v, want render and send failures", err)
	}
}
