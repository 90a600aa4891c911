package assessment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// State is a node of the submission state machine.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateDispatching
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateDispatching:
		return "dispatching"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var ErrNotEditing = errors.New("assessment: workflow is not accepting edits")

// Transition is reported to observers on every state change.
type Transition struct {
	From State
	To   State
	Step int
}

type Observer func(Transition)

type WorkflowOption func(*Workflow)

func WithObserver(fn Observer) WorkflowOption {
	return func(w *Workflow) {
		if fn != nil {
			w.observers = append(w.observers, fn)
		}
	}
}

func WithWorkflowLogger(l *slog.Logger) WorkflowOption {
	return func(w *Workflow) {
		if l != nil {
			w.logger = l
		}
	}
}

// Workflow is one assessment session: the form, its submission state and the
// result of the last successful submission. It is constructed per session
// and handed to whatever drives it.
type Workflow struct {
	id        uuid.UUID
	form      *Form
	sender    Sender
	state     State
	result    *PredictionResult
	observers []Observer
	logger    *slog.Logger
}

func NewWorkflow(sender Sender, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		id:     uuid.New(),
		form:   NewForm(),
		sender: sender,
		state:  StateEditing,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("session_id", w.id.String())
	return w
}

func (w *Workflow) ID() uuid.UUID { return w.id }

func (w *Workflow) State() State { return w.state }

func (w *Workflow) Step() int { return w.form.Step() }

// Form gives read access to the controller, e.g. for the current step
// catalogue entry or the display BMI.
func (w *Workflow) Form() *Form { return w.form }

func (w *Workflow) Input() PredictionInput { return w.form.Input() }

// Result returns the result held by a succeeded workflow.
func (w *Workflow) Result() (PredictionResult, bool) {
	if w.result == nil {
		return PredictionResult{}, false
	}
	return *w.result, true
}

func (w *Workflow) UpdateField(field Field, raw string) error {
	if w.state != StateEditing {
		return ErrNotEditing
	}
	return w.form.UpdateField(field, raw)
}

func (w *Workflow) Advance() (int, error) {
	if w.state != StateEditing {
		return w.form.Step(), ErrNotEditing
	}
	return w.form.Advance(), nil
}

func (w *Workflow) Retreat() (int, error) {
	if w.state != StateEditing {
		return w.form.Step(), ErrNotEditing
	}
	return w.form.Retreat(), nil
}

// Submit validates the record and, when valid, dispatches it. Invalid input
// returns a *ValidationError and leaves the workflow on the final step.
// Dispatch failures pass through the failed state back to editing with the
// input untouched.
func (w *Workflow) Submit(ctx context.Context) (*PredictionResult, error) {
	if w.state != StateEditing {
		return nil, ErrNotEditing
	}
	if !w.form.IsFinalStep() {
		return nil, ErrNotFinalStep
	}

	w.transition(StateValidating)
	input := w.form.Input()
	vr := Validate(input)
	if !vr.Success {
		w.logger.Info("submission rejected", "errors", len(vr.Errors))
		w.transition(StateEditing)
		return nil, vr.Err()
	}

	w.transition(StateDispatching)
	res, err := w.sender.Send(ctx, input)
	if err != nil {
		w.logger.Warn("submission failed", "model", input.Model, "error", err)
		w.transition(StateFailed)
		w.transition(StateEditing)
		return nil, err
	}

	w.result = res
	w.transition(StateSucceeded)
	w.logger.Info("submission succeeded", "model", res.ModelUsed, "status", res.Status)
	return res, nil
}

// Restart begins a fresh assessment: step 1, cleared input, cleared result.
func (w *Workflow) Restart() {
	w.form.Reset()
	w.result = nil
	if c, ok := w.sender.(interface{ Clear() }); ok {
		c.Clear()
	}
	w.transition(StateEditing)
}

func (w *Workflow) transition(to State) {
	t := Transition{From: w.state, To: to, Step: w.form.Step()}
	w.state = to
	for _, fn := range w.observers {
		fn(t)
	}
}
