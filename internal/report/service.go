package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"health-risk-predictor/internal/assessment"
)

var (
	ErrFontNotFound    = errors.New("report: no usable font")
	ErrSharingDisabled = errors.New("report: sharing is not configured")
)

// DefaultFontPaths lists where DejaVuSans lives on common distributions.
var DefaultFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

const (
	fontFamily  = "DejaVu"
	textWidth   = 500
	pageBottom  = 780
	lineHeight  = 14
	blockMargin = 8
)

type Generator struct {
	fontPaths []string
	now       func() time.Time
}

func NewGenerator(fontPaths ...string) *Generator {
	if len(fontPaths) == 0 {
		fontPaths = DefaultFontPaths
	}
	return &Generator{fontPaths: fontPaths, now: time.Now}
}

// Render lays out a one or more page A4 report for res.
func (g *Generator) Render(res assessment.PredictionResult) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := g.loadFont(&pdf); err != nil {
		return nil, err
	}

	w := &writer{pdf: &pdf}

	w.heading(20, "Health Risk Assessment")
	w.pdf.Br(30)

	w.setFont(12)
	w.line(fmt.Sprintf("Date: %s", g.now().Format("02.01.2006 15:04")))
	w.line(fmt.Sprintf("Model: %s", res.ModelUsed.Label()))
	w.line(fmt.Sprintf("Prediction: %s", res.Status))
	w.line(fmt.Sprintf("Risk score: %.0f%%", res.RiskRecommendation.Score))
	w.pdf.Br(blockMargin)

	w.heading(14, res.RiskRecommendation.Title)
	w.pdf.Br(lineHeight + 4)
	w.setFont(11)
	w.paragraph(res.RiskRecommendation.Message)
	w.pdf.Br(blockMargin * 2)

	w.heading(14, "Recommendations")
	w.pdf.Br(lineHeight + 4)
	if len(res.Recommendations) == 0 {
		w.setFont(11)
		w.line("- No recommendations.")
	}
	for _, rec := range res.Recommendations {
		w.setFont(12)
		w.line(fmt.Sprintf("[%s] %s (%s)", rec.Category, rec.Title, rec.Status))
		w.setFont(11)
		w.paragraph(rec.Message)
		w.pdf.Br(blockMargin)
	}

	w.setFont(9)
	w.line("This report is informational and is not a medical diagnosis.")

	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) loadFont(pdf *gopdf.GoPdf) error {
	var lastErr error
	for _, path := range g.fontPaths {
		err := pdf.AddTTFFont(fontFamily, path)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("%w: tried %s: %v", ErrFontNotFound, strings.Join(g.fontPaths, ", "), lastErr)
}

// writer keeps the first layout error so Render can check once at the end.
type writer struct {
	pdf *gopdf.GoPdf
	err error
}

func (w *writer) setFont(size int) {
	if w.err != nil {
		return
	}
	w.err = w.pdf.SetFont(fontFamily, "", size)
}

func (w *writer) heading(size int, text string) {
	w.setFont(size)
	if w.err != nil {
		return
	}
	w.err = w.pdf.Cell(nil, text)
}

func (w *writer) line(text string) {
	if w.err != nil {
		return
	}
	if w.pdf.GetY() > pageBottom {
		w.pdf.AddPage()
	}
	if w.err = w.pdf.Cell(nil, text); w.err != nil {
		return
	}
	w.pdf.Br(lineHeight)
}

func (w *writer) paragraph(text string) {
	if w.err != nil || text == "" {
		return
	}
	lines, err := w.pdf.SplitText(text, textWidth)
	if err != nil {
		w.err = err
		return
	}
	for _, l := range lines {
		w.line(l)
	}
}

// FileName names the report after the model and the time it was produced.
func FileName(res assessment.PredictionResult, at time.Time) string {
	return fmt.Sprintf("health_report_%s_%s.pdf", res.ModelUsed, at.Format("20060102_150405"))
}

// ChatSender delivers reports to a chat. *telegram.Client implements it.
type ChatSender interface {
	SendDocument(ctx context.Context, chatID int64, data []byte, fileName, caption string) error
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Service struct {
	gen    *Generator
	sender ChatSender
	chatID int64
	logger *slog.Logger
}

// NewService wires report rendering and Telegram delivery. A nil sender or a
// zero chat id disables Share.
func NewService(gen *Generator, sender ChatSender, chatID int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, sender: sender, chatID: chatID, logger: logger}
}

func (s *Service) Render(res assessment.PredictionResult) ([]byte, error) {
	return s.gen.Render(res)
}

func (s *Service) SharingEnabled() bool {
	return s.sender != nil && s.chatID != 0
}

// Share renders res and sends it to the configured chat. When the PDF cannot
// be rendered a plain text summary is sent instead.
func (s *Service) Share(ctx context.Context, res assessment.PredictionResult) error {
	if !s.SharingEnabled() {
		return ErrSharingDisabled
	}

	capt := caption(res)
	data, err := s.gen.Render(res)
	if err != nil {
		s.logger.Warn("report render failed, sending text summary", "chat_id", s.chatID, "error", err)
		if sendErr := s.sender.SendMessage(ctx, s.chatID, Summary(res)); sendErr != nil {
			s.logger.Error("send summary failed", "error", sendErr)
			return errors.Join(err, sendErr)
		}
		return nil
	}

	fileName := FileName(res, s.gen.now())

	s.logger.Info("sending report", "chat_id", s.chatID, "file", fileName, "bytes", len(data))
	if err := s.sender.SendDocument(ctx, s.chatID, data, fileName, capt); err != nil {
		s.logger.Error("send report failed", "error", err)
		return err
	}
	return nil
}

func caption(res assessment.PredictionResult) string {
	return fmt.Sprintf("%s: %s (%.0f%%)", res.ModelUsed.Label(), res.RiskRecommendation.Title, res.RiskRecommendation.Score)
}

// Summary is the text form of a report: caption, status, summary message and
// one line per recommendation.
func Summary(res assessment.PredictionResult) string {
	var b strings.Builder
	b.WriteString(caption(res))
	fmt.Fprintf(&b, "\nStatus: %s", res.Status)
	if res.RiskRecommendation.Message != "" {
		b.WriteString("\n" + res.RiskRecommendation.Message)
	}
	for _, rec := range res.Recommendations {
		fmt.Fprintf(&b, "\n[%s] %s: %s", rec.Category, rec.Title, rec.Message)
	}
	return b.String()
}
