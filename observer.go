// Package browserlens wires the Router, Extractors, RefManager, StateDiffer,
// and Formatter into the single Observe(page) call an agent loop drives on
// each step. See SPEC_FULL.md for the full component design.
package browserlens

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sanjitr11/browserlens/differ"
	"github.com/sanjitr11/browserlens/extract"
	"github.com/sanjitr11/browserlens/format"
	"github.com/sanjitr11/browserlens/internal/obslog"
	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/refs"
	"github.com/sanjitr11/browserlens/router"
	"github.com/sanjitr11/browserlens/state"
)

// Config configures an Observer at construction time. There is no config
// file or environment parsing in the core: every field is set in code.
type Config struct {
	// MaxTokens bounds the rendered text of every observation. Defaults
	// to 4000 when zero.
	MaxTokens int
	// EnableLogging turns on step/latency/token logging to stdout.
	EnableLogging bool
	// RouterOverride replaces the default representation-selection
	// strategy, e.g. to pin a representation in tests.
	RouterOverride router.Strategy
	// EnableRouting turns the adaptive router on. Defaults to true (a nil
	// pointer means "unset", not "false"); set a pointer to false to pin
	// every observation to ForceRepresentation (or A11yTree if unset).
	EnableRouting *bool
	// EnableDiffing turns delta rendering on. Defaults to true; set a
	// pointer to false to always render a full state.
	EnableDiffing *bool
	// ForceRepresentation, if set, is used instead of the router's choice.
	// Only takes effect when EnableRouting is disabled.
	ForceRepresentation state.RepresentationType
}

func boolOrDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Observer is the orchestrator: one per page, not safe for concurrent use.
type Observer struct {
	sessionID string
	cfg       Config
	router    *router.Router
	extractors map[state.RepresentationType]extract.Extractor
	refs      *refs.Manager
	differ    *differ.StateDiffer
	formatter *format.Formatter
	logger    *obslog.Logger
	step      int
}

// New constructs an Observer ready to call Observe on.
func New(cfg Config) *Observer {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}

	return &Observer{
		sessionID: uuid.New().String(),
		cfg:       cfg,
		router:    router.New(cfg.RouterOverride),
		extractors: map[state.RepresentationType]extract.Extractor{
			state.A11yTree:     extract.NewA11yExtractor(),
			state.DistilledDOM: extract.NewDOMExtractor(),
			state.Vision:       extract.NewVisionExtractor(),
			state.Hybrid:       extract.NewHybridExtractor(),
		},
		refs:      refs.New(),
		differ:    differ.NewStateDiffer(),
		formatter: format.New(),
		logger:    obslog.New(cfg.EnableLogging),
	}
}

// SessionID identifies this Observer instance for correlation in logs.
func (o *Observer) SessionID() string { return o.sessionID }

// Observe extracts, diffs, and renders one observation of page. It
// implements spec.md §4.8's six-step procedure: pick a representation,
// extract it, gate on navigation, gate on first-observation, diff or
// full-render, and fall back to a full render if the delta turned out
// larger than the state it describes.
func (o *Observer) Observe(ctx context.Context, page pageio.Page) (*state.ObservationResult, error) {
	start := time.Now()

	var repr state.RepresentationType
	if boolOrDefault(o.cfg.EnableRouting, true) {
		var err error
		repr, _, err = o.router.Select(page)
		if err != nil {
			// Spec §7: a transient signal/evaluation failure degrades the
			// representation choice rather than failing the observation.
			o.logger.Error("router selection", err)
			repr = state.A11yTree
		}
	} else {
		repr = o.cfg.ForceRepresentation
		if repr == "" {
			repr = state.A11yTree
		}
	}

	extractor, ok := o.extractors[repr]
	if !ok {
		return nil, fmt.Errorf("observe: no extractor registered for representation %q", repr)
	}

	ps, err := extractor.Extract(ctx, page)
	if err != nil {
		o.logger.Error("extraction", err)
		return nil, fmt.Errorf("observe: extraction failed: %w", err)
	}

	navigated := false
	if prevURL := o.differ.GetPreviousURL(); prevURL != "" && prevURL != ps.URL {
		o.differ.ForceFullState()
		o.logger.NavigationReset(ps.URL)
		navigated = true
	}

	o.step++
	refFn := o.refs.GetOrCreate

	var result *state.ObservationResult
	if !boolOrDefault(o.cfg.EnableDiffing, true) || o.differ.ShouldUseFullState() {
		o.differ.AssignFullState(ps, refFn)
		text := o.formatter.FormatFull(ps, o.step, o.cfg.MaxTokens)
		result = &state.ObservationResult{
			Step: o.step, Representation: repr, Text: text,
			Screenshot: ps.Screenshot, TokensUsed: o.formatter.Count(text),
			FullState: true, DiffDiscarded: navigated,
		}
	} else {
		delta := o.differ.Diff(ps, refFn)
		result = o.renderDeltaOrFallback(ps, delta, repr)
	}

	result.URL = ps.URL
	result.LatencyMS = time.Since(start).Milliseconds()
	o.logger.Observation(result.Step, string(result.Representation), result.TokensUsed, time.Since(start), result.DiffDiscarded)
	return result, nil
}

// renderDeltaOrFallback implements the delta-size fallback: if the delta's
// rendered size exceeds the full state's rendered size, the delta carries
// no value over just re-sending everything, so it's discarded in favor of
// a full render.
func (o *Observer) renderDeltaOrFallback(ps *state.PageState, delta *state.Delta, repr state.RepresentationType) *state.ObservationResult {
	rawDelta := o.formatter.FormatDelta(delta, o.step, math.MaxInt32)
	rawFull := o.formatter.FormatFull(ps, o.step, math.MaxInt32)

	if o.formatter.Count(rawDelta) > o.formatter.Count(rawFull) {
		text := o.formatter.FormatFull(ps, o.step, o.cfg.MaxTokens)
		return &state.ObservationResult{
			Step: o.step, Representation: repr, Text: text,
			Screenshot: ps.Screenshot, TokensUsed: o.formatter.Count(text),
			FullState: true, DiffDiscarded: true, Delta: delta,
		}
	}

	text := o.formatter.FormatDelta(delta, o.step, o.cfg.MaxTokens)
	return &state.ObservationResult{
		Step: o.step, Representation: repr, Text: text,
		Screenshot: ps.Screenshot, TokensUsed: o.formatter.Count(text),
		Delta: delta,
	}
}

// Reset clears step count, ref assignments, and the diff snapshot, but
// leaves the router's per-origin signal cache intact, per spec.md §4.8.
func (o *Observer) Reset() {
	o.step = 0
	o.refs.Reset()
	o.differ.Reset()
}
