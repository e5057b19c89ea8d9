package trace

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type contextKey string

const traceKey contextKey = "recmerge_trace"

// Trace holds the stage timings of one command run
type Trace struct {
	mu       sync.Mutex
	spans    []Span
	start    time.Time
	lastTime time.Time // end of the previous span
	opName   string
	enable   bool
}

// Span is one timed stage and the number of records it produced
type Span struct {
	Name     string
	Duration time.Duration
	Records  int
}

// WithTrace adds an enabled trace named opName to ctx
func WithTrace(ctx context.Context, opName string) context.Context {
	now := time.Now()
	return context.WithValue(ctx, traceKey, &Trace{
		start:    now,
		lastTime: now,
		opName:   opName,
		enable:   true,
	})
}

// FromContext gets the trace from ctx.
// Without one it returns a disabled trace whose methods do nothing.
func FromContext(ctx context.Context) *Trace {
	if tr, ok := ctx.Value(traceKey).(*Trace); ok {
		return tr
	}
	return &Trace{enable: false}
}

// Enabled reports whether spans are being recorded
func (t *Trace) Enabled() bool {
	return t.enable
}

// RecordSpan records the time since the previous span (or trace start)
func (t *Trace) RecordSpan(name string, records int) {
	if !t.enable {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.spans = append(t.spans, Span{
		Name:     name,
		Duration: now.Sub(t.lastTime),
		Records:  records,
	})
	t.lastTime = now
}

// Total returns total elapsed time since trace start
func (t *Trace) Total() time.Duration {
	return time.Since(t.start)
}

// Spans returns a copy of the recorded spans
func (t *Trace) Spans() []Span {
	t.mu.Lock()
	defer t.mu.Unlock()

	spans := make([]Span, len(t.spans))
	copy(spans, t.spans)
	return spans
}

// Dump returns formatted trace information
func (t *Trace) Dump() string {
	var sb strings.Builder
	t.Fdump(&sb, false)
	return sb.String()
}

// Fdump writes the trace to w, coloring the header when colorize is set
func (t *Trace) Fdump(w io.Writer, colorize bool) {
	if !t.enable {
		return
	}
	spans := t.Spans()
	if len(spans) == 0 {
		return
	}

	header := color.New(color.FgCyan, color.Bold)
	if !colorize {
		header.DisableColor()
	} else {
		header.EnableColor()
	}
	header.Fprintf(w, "=== Trace [%s]: Total %v ===\n", t.opName, t.Total())
	for i, span := range spans {
		fmt.Fprintf(w, "[%d] %s: %v records=%d\n", i+1, span.Name, span.Duration, span.Records)
	}
}
