package harness

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/valpere/perevir/internal/translator"
)

// Direction is the language pair a whole pass is sent under. It does not
// vary per sentence within one run.
type Direction struct {
	SourceLang string
	TargetLang string
}

func (d Direction) Validate() error {
	if _, err := language.Parse(d.SourceLang); err != nil {
		return fmt.Errorf("invalid source language %q: %v", d.SourceLang, err)
	}
	if _, err := language.Parse(d.TargetLang); err != nil {
		return fmt.Errorf("invalid target language %q: %v", d.TargetLang, err)
	}
	return nil
}

func (d Direction) Reverse() Direction {
	return Direction{SourceLang: d.TargetLang, TargetLang: d.SourceLang}
}

func (d Direction) String() string {
	return d.SourceLang + "→" + d.TargetLang
}

// Measurement is one timed round trip: elapsed wall-clock time from just
// before submission to just after the response was received and parsed.
type Measurement struct {
	Elapsed  time.Duration
	Response *translator.ServiceResult
}

// RequestError reports the first failed request of a run. The run aborts
// there; remaining sentences are not sent.
type RequestError struct {
	Index int
	Text  string
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %d failed: %v", e.Index, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Observer is invoked after each completed measurement, in sequence
// order. It exists for live feedback during long dataset passes; the
// runner itself stays a sentences-in, summary-out function.
type Observer func(index int, text string, m Measurement)

// Runner drives one sentence sequence against a translation service,
// strictly sequentially: each request completes before the next is sent,
// so queuing delay never leaks into the per-request timings.
type Runner struct {
	service  translator.TranslationService
	cfg      translator.ServiceConfig
	observer Observer
}

func New(service translator.TranslationService, cfg translator.ServiceConfig, observer Observer) *Runner {
	return &Runner{
		service:  service,
		cfg:      cfg,
		observer: observer,
	}
}

// Run sends every sentence in order under the given direction and
// returns the aggregated summary. The first failure aborts the run with
// a *RequestError and no summary. An empty sequence is legal and yields
// a summary with Count 0 and no mean.
func (r *Runner) Run(ctx context.Context, sentences []string, dir Direction) (*Summary, error) {
	if err := dir.Validate(); err != nil {
		return nil, err
	}

	measurements := make([]Measurement, 0, len(sentences))

	for i, text := range sentences {
		req := translator.TranslateRequest{
			Text:       text,
			SourceLang: dir.SourceLang,
			TargetLang: dir.TargetLang,
		}

		start := time.Now()
		result, err := r.service.Translate(ctx, r.cfg, req)
		elapsed := time.Since(start)

		if err != nil {
			return nil, &RequestError{Index: i, Text: text, Err: err}
		}

		m := Measurement{Elapsed: elapsed, Response: result}
		measurements = append(measurements, m)

		if r.observer != nil {
			r.observer(i, text, m)
		}
	}

	return Summarize(measurements), nil
}
