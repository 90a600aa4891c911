package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultTimeout      = 5 * time.Second
	DefaultMaxRedirects = 5

	maxErrorBody = 4 << 10
)

// Sender performs one prediction round trip.
type Sender interface {
	Send(ctx context.Context, in PredictionInput) (*PredictionResult, error)
}

// Dispatcher posts a PredictionInput to the gateway and keeps the last
// successful result. The in-flight flag is raised for the duration of each
// request.
type Dispatcher struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *slog.Logger

	inFlight atomic.Bool

	mu     sync.RWMutex
	result *PredictionResult
}

type DispatcherOption func(*Dispatcher)

// WithHTTPClient replaces the default client (5s timeout, 5 redirects).
func WithHTTPClient(c *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		if c != nil {
			d.httpClient = c
		}
	}
}

func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.httpClient.Timeout = timeout
		}
	}
}

func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher builds a dispatcher for the gateway rooted at baseURL, for
// example "http://localhost:8080/api/prediction".
func NewDispatcher(baseURL string, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:       DefaultTimeout,
			CheckRedirect: limitRedirects(DefaultMaxRedirects),
		},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Endpoint is the URL a submission for model m is posted to.
func (d *Dispatcher) Endpoint(m Model) string {
	return d.baseURL + "/predict/" + url.PathEscape(string(m))
}

// InFlight reports whether a request is outstanding.
func (d *Dispatcher) InFlight() bool {
	return d.inFlight.Load()
}

// Result returns the last stored result.
func (d *Dispatcher) Result() (PredictionResult, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.result == nil {
		return PredictionResult{}, false
	}
	return *d.result, true
}

// Clear drops the stored result.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	d.result = nil
	d.mu.Unlock()
}

// Send posts the whole record and decodes the answer. Failures are wrapped
// with ErrNetwork or ErrDecode and never touch the stored result. A call made
// while another is outstanding fails with ErrInFlight.
func (d *Dispatcher) Send(ctx context.Context, in PredictionInput) (*PredictionResult, error) {
	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer d.inFlight.Store(false)

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrNetwork, err)
	}

	endpoint := d.Endpoint(in.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: gateway returned %s: %s", ErrNetwork, resp.Status, strings.TrimSpace(string(respBody)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrNetwork, err)
	}

	result, err := d.decode(raw)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.result = result
	d.mu.Unlock()

	d.logger.Debug("prediction received",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	out := *result
	return &out, nil
}

// resultPayload and its nested payloads use pointers so that absent keys can
// be told apart from zero values. Color and icon are optional.
type resultPayload struct {
	ModelUsed          *Model                  `json:"model_used" validate:"required"`
	RiskPrediction     *int                    `json:"risk_prediction" validate:"required"`
	RiskProbability    *float64                `json:"risk_probability" validate:"required"`
	Status             *string                 `json:"status" validate:"required"`
	Recommendations    []recommendationPayload `json:"recommendations" validate:"required,dive"`
	RiskRecommendation *riskPayload            `json:"riskRecommendation" validate:"required"`
}

type recommendationPayload struct {
	Category *RecommendationCategory `json:"category" validate:"required,min=1"`
	Status   *RecommendationStatus   `json:"status" validate:"required,min=1"`
	Title    *string                 `json:"title" validate:"required,min=1"`
	Message  *string                 `json:"message" validate:"required"`
	Color    string                  `json:"color"`
}

type riskPayload struct {
	Title   *string               `json:"title" validate:"required,min=1"`
	Status  *RecommendationStatus `json:"status" validate:"required,min=1"`
	Score   *float64              `json:"score" validate:"required"`
	Message *string               `json:"message" validate:"required"`
	Icon    string                `json:"icon"`
}

func (d *Dispatcher) decode(raw []byte) (*PredictionResult, error) {
	var p resultPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := d.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	recs := make([]Recommendation, len(p.Recommendations))
	for i, r := range p.Recommendations {
		recs[i] = Recommendation{
			Category: *r.Category,
			Status:   *r.Status,
			Title:    *r.Title,
			Message:  *r.Message,
			Color:    r.Color,
		}
	}
	risk := p.RiskRecommendation
	return &PredictionResult{
		ModelUsed:       *p.ModelUsed,
		RiskPrediction:  *p.RiskPrediction,
		RiskProbability: *p.RiskProbability,
		Status:          *p.Status,
		Recommendations: recs,
		RiskRecommendation: RiskRecommendation{
			Title:   *risk.Title,
			Status:  *risk.Status,
			Score:   *risk.Score,
			Message: *risk.Message,
			Icon:    risk.Icon,
		},
	}, nil
}

func limitRedirects(limit int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) >= limit {
			return fmt.Errorf("stopped after %d redirects", limit)
		}
		return nil
	}
}
