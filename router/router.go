package router

import (
	"time"

	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/state"
)

const cacheTTL = 60 * time.Second

type cacheEntry struct {
	signals *state.PageSignals
	at      time.Time
}

// Router caches PageSignals per origin for cacheTTL and delegates the
// representation decision to a Strategy. Ported from router/router.py's
// AdaptiveRouter, including its same-origin cache-hit behavior: on a hit
// within TTL, the cached signals object is mutated in place to reflect the
// current URL rather than being invalidated, so SPA route changes within
// one origin don't pay for a fresh signal extraction every step.
type Router struct {
	extractor *SignalExtractor
	strategy  Strategy
	cache     map[string]*cacheEntry
	now       func() time.Time
}

// New returns a Router using DefaultStrategy. Pass override to replace the
// decision strategy (e.g. in tests, or a caller-supplied heuristic).
func New(override Strategy) *Router {
	strategy := override
	if strategy == nil {
		strategy = NewDefaultStrategy()
	}
	return &Router{
		extractor: NewSignalExtractor(),
		strategy:  strategy,
		cache:     make(map[string]*cacheEntry),
		now:       time.Now,
	}
}

// Select computes (or reuses) signals for page and returns the chosen
// representation.
func (r *Router) Select(page pageio.Page) (state.RepresentationType, *state.PageSignals, error) {
	sig, err := r.GetSignals(page)
	if err != nil {
		return "", nil, err
	}
	return r.strategy.Select(sig), sig, nil
}

// GetSignals returns cached signals for page's origin if still fresh,
// otherwise extracts and caches fresh ones.
func (r *Router) GetSignals(page pageio.Page) (*state.PageSignals, error) {
	url := page.URL()
	origin := (&state.PageSignals{URL: url}).Origin()

	if entry, ok := r.cache[origin]; ok && r.now().Sub(entry.at) < cacheTTL {
		entry.signals.URL = url
		return entry.signals, nil
	}

	sig, err := r.extractor.Extract(page)
	if err != nil {
		// SignalExtractor already degrades internally; this is a last-resort
		// net for a Strategy override or a custom extractor that still errors.
		sig = &state.PageSignals{URL: url}
	}
	r.cache[origin] = &cacheEntry{signals: sig, at: r.now()}
	return sig, nil
}

// InvalidateCache drops cached signals. With url nil, the whole cache is
// cleared; otherwise only that URL's origin is evicted.
func (r *Router) InvalidateCache(url *string) {
	if url == nil {
		r.cache = make(map[string]*cacheEntry)
		return
	}
	origin := (&state.PageSignals{URL: *url}).Origin()
	delete(r.cache, origin)
}
