package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Metrics tracks basic performance metrics
type Metrics struct {
	runs     int64
	errors   int64
	duration time.Duration
	mu       sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRun records a completed run
func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	m.runs++
	m.duration += duration
	m.mu.Unlock()
}

// RecordError records an error
func (m *Metrics) RecordError() {
	m.mu.Lock()
	m.errors++
	m.mu.Unlock()
}

// GetStats returns current metrics
func (m *Metrics) GetStats() (int64, int64, time.Duration) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs, m.errors, m.duration
}

// RunResult reports what a run produced.
type RunResult struct {
	ID     int64 // 0 when history is disabled
	Banner string
	Labels []string
}

// Engine coordinates classification, emission, and history recording.
type Engine struct {
	cfg     Config
	rules   RuleSet
	store   *Store // nil disables history
	out     io.Writer
	metrics *Metrics
}

// NewEngine creates an engine writing its sequence output to out. A nil
// store disables history recording.
func NewEngine(cfg Config, rules RuleSet, store *Store, out io.Writer) *Engine {
	return &Engine{
		cfg:     cfg,
		rules:   rules,
		store:   store,
		out:     out,
		metrics: NewMetrics(),
	}
}

// Run classifies 1..bound and, unless quiet, writes one banner line followed
// by one label per line in strict increasing-i order. A non-positive bound
// fails before any output is produced. When a store is attached the run is
// recorded after emission.
func (e *Engine) Run(ctx context.Context, bound int, quiet bool) (*RunResult, error) {
	start := time.Now()
	defer func() {
		e.metrics.RecordRun(time.Since(start))
	}()

	labels, err := e.rules.Classify(bound)
	if err != nil {
		e.metrics.RecordError()
		return nil, err
	}

	banner := fmt.Sprintf(e.cfg.Defaults.Banner, bound)
	if !quiet {
		w := bufio.NewWriter(e.out)
		if _, err := fmt.Fprintln(w, banner); err != nil {
			e.metrics.RecordError()
			return nil, fmt.Errorf("write banner: %w", err)
		}
		for _, label := range labels {
			if _, err := fmt.Fprintln(w, label); err != nil {
				e.metrics.RecordError()
				return nil, fmt.Errorf("write label: %w", err)
			}
		}
		if err := w.Flush(); err != nil {
			e.metrics.RecordError()
			return nil, fmt.Errorf("flush output: %w", err)
		}
	}

	result := &RunResult{Banner: banner, Labels: labels}
	if e.store != nil {
		id, err := e.store.RecordRun(ctx, bound, banner, e.rules.String(), labels)
		if err != nil {
			e.metrics.RecordError()
			return nil, fmt.Errorf("record run: %w", err)
		}
		result.ID = id
	}

	runs, errs, total := e.metrics.GetStats()
	log.Debug().Int("bound", bound).Int64("runs", runs).Int64("errors", errs).Dur("total", total).Msg("run complete")
	return result, nil
}

// GetMetrics returns current performance metrics
func (e *Engine) GetMetrics() (int64, int64, time.Duration) {
	return e.metrics.GetStats()
}
