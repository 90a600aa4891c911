// Package wizard walks a user through the assessment steps in a terminal and
// shows the prediction when the gateway answers.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"health-risk-predictor/internal/assessment"
	"health-risk-predictor/internal/report"
)

const (
	navNext   = "Next"
	navBack   = "Back"
	navSubmit = "Submit"
	navQuit   = "Quit"
)

// ReportRenderer produces a PDF for a prediction.
type ReportRenderer interface {
	Render(res assessment.PredictionResult) ([]byte, error)
}

type Option func(*Wizard)

func WithReports(r ReportRenderer) Option {
	return func(w *Wizard) { w.reports = r }
}

// WithSaveFunc replaces os.WriteFile for saved reports.
func WithSaveFunc(fn func(name string, data []byte) error) Option {
	return func(w *Wizard) {
		if fn != nil {
			w.save = fn
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) {
		if l != nil {
			w.logger = l
		}
	}
}

type Wizard struct {
	driver   PromptDriver
	workflow *assessment.Workflow
	reports  ReportRenderer
	save     func(name string, data []byte) error
	logger   *slog.Logger
	now      func() time.Time

	// ctx of the running session, used by the transition observer.
	ctx context.Context
}

func New(driver PromptDriver, sender assessment.Sender, opts ...Option) *Wizard {
	w := &Wizard{
		driver: driver,
		save: func(name string, data []byte) error {
			return os.WriteFile(name, data, 0o644)
		},
		logger: slog.Default(),
		now:    time.Now,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.workflow = assessment.NewWorkflow(sender,
		assessment.WithObserver(w.onTransition),
		assessment.WithWorkflowLogger(w.logger),
	)
	return w
}

func (w *Wizard) Workflow() *assessment.Workflow { return w.workflow }

// Run drives sessions until the user declines a new assessment or quits.
func (w *Wizard) Run(ctx context.Context) error {
	w.ctx = ctx
	defer func() { w.ctx = context.Background() }()

	for {
		res, err := w.collect(ctx)
		if err != nil {
			return err
		}
		if res == nil {
			return nil
		}

		if err := w.showResult(ctx, *res); err != nil {
			return err
		}
		if err := w.offerReport(ctx, *res); err != nil {
			return err
		}

		again, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Start a new assessment?", Default: false})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		w.workflow.Restart()
	}
}

// collect loops over the steps until a submission succeeds. A nil result
// with a nil error means the user quit.
func (w *Wizard) collect(ctx context.Context) (*assessment.PredictionResult, error) {
	for {
		step := w.workflow.Form().CurrentStep()
		if err := w.driver.Info(ctx, fmt.Sprintf("\nStep %d of %d: %s (%s)\n%s",
			step.ID, assessment.TotalSteps, step.Title, step.ShortTitle, step.Description)); err != nil {
			return nil, err
		}

		for _, spec := range step.Fields {
			if err := w.promptField(ctx, spec); err != nil {
				return nil, err
			}
		}
		if step.ID == 1 {
			if err := w.showBMI(ctx); err != nil {
				return nil, err
			}
		}

		choice, err := w.navigate(ctx)
		if err != nil {
			return nil, err
		}
		switch choice {
		case navNext:
			_, err = w.workflow.Advance()
		case navBack:
			_, err = w.workflow.Retreat()
		case navQuit:
			return nil, nil
		case navSubmit:
			res, subErr := w.workflow.Submit(ctx)
			if subErr == nil {
				return res, nil
			}
			err = w.reportSubmitError(ctx, subErr)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (w *Wizard) navigate(ctx context.Context) (string, error) {
	var options []string
	switch {
	case w.workflow.Form().IsFinalStep():
		options = []string{navSubmit, navBack, navQuit}
	case w.workflow.Step() == 1:
		options = []string{navNext, navQuit}
	default:
		options = []string{navNext, navBack, navQuit}
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Continue", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("wizard: navigation choice %d out of range", idx)
	}
	return options[idx], nil
}

func (w *Wizard) promptField(ctx context.Context, spec assessment.FieldSpec) error {
	in := w.workflow.Input()

	if len(spec.Options) > 0 {
		current := currentOption(in, spec)
		idx, err := w.driver.Select(ctx, SelectConfig{
			Message:      spec.Label,
			Options:      optionLabels(spec),
			DefaultIndex: current,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(spec.Options) {
			return fmt.Errorf("wizard: %s choice %d out of range", spec.Field, idx)
		}
		raw := strconv.Itoa(idx)
		if spec.Field == assessment.FieldModel {
			raw = spec.Options[idx]
		}
		return w.workflow.UpdateField(spec.Field, raw)
	}

	for {
		def := ""
		if v := numericValue(in, spec.Field); v != 0 {
			def = strconv.FormatFloat(v, 'f', -1, 64)
		}
		raw, err := w.driver.Input(ctx, InputConfig{
			Message: fieldMessage(spec),
			Default: def,
			Help:    fmt.Sprintf("Typical range %g-%g", spec.Min, spec.Max),
		})
		if err != nil {
			return err
		}
		err = w.workflow.UpdateField(spec.Field, raw)
		if errors.Is(err, assessment.ErrNotEditing) || errors.Is(err, assessment.ErrUnknownField) {
			return err
		}

		var msg string
		switch {
		case err != nil:
			msg = fmt.Sprintf("%q is not a number, try again.", raw)
		case strings.TrimSpace(raw) != "" && outOfRange(w.workflow.Input(), spec):
			msg = fmt.Sprintf("%s must be between %g and %g.", spec.Label, spec.Min, spec.Max)
		default:
			return nil
		}
		if err := w.driver.Info(ctx, msg); err != nil {
			return err
		}
		in = w.workflow.Input()
	}
}

// outOfRange applies the widget bounds. Blank answers are left for Validate.
func outOfRange(in assessment.PredictionInput, spec assessment.FieldSpec) bool {
	v := numericValue(in, spec.Field)
	return !(v >= spec.Min && v <= spec.Max)
}

func (w *Wizard) showBMI(ctx context.Context) error {
	bmi, ok := w.workflow.Form().BMI()
	if !ok {
		return nil
	}
	return w.driver.Info(ctx, fmt.Sprintf("BMI: %.1f (%s)", bmi, w.workflow.Input().BMICategory))
}

func (w *Wizard) reportSubmitError(ctx context.Context, err error) error {
	var verr *assessment.ValidationError
	switch {
	case errors.As(err, &verr):
		for _, msg := range verr.Messages {
			if err := w.driver.Info(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, assessment.ErrNotEditing):
		return err
	default:
		// The form stays on the final step with its input, ready to resubmit.
		w.logger.Debug("submission error", "error", err)
		return w.driver.Info(ctx, "Submission Failed: "+err.Error())
	}
}

// onTransition is the loading indicator.
func (w *Wizard) onTransition(t assessment.Transition) {
	if t.To == assessment.StateDispatching {
		_ = w.driver.Info(w.ctx, "Analyzing your health data...")
	}
}

func (w *Wizard) showResult(ctx context.Context, res assessment.PredictionResult) error {
	lines := []string{
		"",
		fmt.Sprintf("Result: %s (%s)", res.Status, res.ModelUsed.Label()),
		fmt.Sprintf("Risk score: %.0f%% - %s", res.RiskRecommendation.Score, res.RiskRecommendation.Title),
	}
	if res.RiskRecommendation.Message != "" {
		lines = append(lines, res.RiskRecommendation.Message)
	}
	if len(res.Recommendations) > 0 {
		lines = append(lines, "", "Recommendations:")
	}
	for _, rec := range res.Recommendations {
		lines = append(lines, fmt.Sprintf("  [%s] %s (%s): %s", rec.Category, rec.Title, rec.Status, rec.Message))
	}
	for _, l := range lines {
		if err := w.driver.Info(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (w *Wizard) offerReport(ctx context.Context, res assessment.PredictionResult) error {
	if w.reports == nil {
		return nil
	}
	ok, err := w.driver.Confirm(ctx, ConfirmConfig{Message: "Save a PDF report?", Default: true})
	if err != nil || !ok {
		return err
	}
	name, err := w.driver.Input(ctx, InputConfig{
		Message: "File name",
		Default: report.FileName(res, w.now()),
	})
	if err != nil {
		return err
	}

	data, err := w.reports.Render(res)
	if err == nil {
		err = w.save(name, data)
	}
	if err != nil {
		w.logger.Warn("report not saved", "file", name, "error", err)
		return w.driver.Info(ctx, "Could not save report: "+err.Error())
	}
	return w.driver.Info(ctx, "Report saved to "+name)
}

func fieldMessage(spec assessment.FieldSpec) string {
	if spec.Unit == "" {
		return spec.Label
	}
	return fmt.Sprintf("%s (%s)", spec.Label, spec.Unit)
}

func optionLabels(spec assessment.FieldSpec) []string {
	if spec.Field != assessment.FieldModel {
		return spec.Options
	}
	out := make([]string, len(spec.Options))
	for i, o := range spec.Options {
		out[i] = assessment.Model(o).Label()
	}
	return out
}

func currentOption(in assessment.PredictionInput, spec assessment.FieldSpec) int {
	switch spec.Field {
	case assessment.FieldGender:
		return int(in.Gender)
	case assessment.FieldModel:
		for i, o := range spec.Options {
			if assessment.Model(o) == in.Model {
				return i
			}
		}
	}
	return 0
}

func numericValue(in assessment.PredictionInput, f assessment.Field) float64 {
	switch f {
	case assessment.FieldAge:
		return in.Age
	case assessment.FieldHeight:
		return in.Height
	case assessment.FieldWeight:
		return in.Weight
	case assessment.FieldSleepDuration:
		return in.SleepDuration
	case assessment.FieldPhysicalActivity:
		return in.PhysicalActivity
	case assessment.FieldDailySteps:
		return in.DailySteps
	case assessment.FieldStressLevel:
		return in.StressLevel
	case assessment.FieldQualityOfSleep:
		return in.QualityOfSleep
	case assessment.FieldHeartRate:
		return in.HeartRate
	case assessment.FieldSystolicBP:
		return in.SystolicBP
	case assessment.FieldDiastolicBP:
		return in.DiastolicBP
	default:
		return 0
	}
}
