// Package router chooses the cheapest representation that's still
// sufficient for the current page, based on cheap structural signals
// rather than a full extraction.
package router

import (
	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/state"
	"github.com/tidwall/gjson"
)

// unwrapJSON handles the fact that Eval may return either a JSON-encoded
// string (as domExtractionJS-style scripts here produce via
// JSON.stringify) or an already-structured value, as test fakes sometimes
// supply directly.
func unwrapJSON(result gjson.Result) gjson.Result {
	if result.Type == gjson.String {
		return gjson.Parse(result.String())
	}
	return result
}

// pageTypePatterns is evaluated in order; the first pattern whose substring
// list matches the URL path wins. Order matters (form beats dashboard beats
// article beats search), so this stays a slice, not a map. Grounded
// verbatim on router/signals.py's _PAGE_TYPE_PATTERNS.
var pageTypePatterns = []struct {
	pageType string
	hints    []string
}{
	{"form", []string{"/checkout", "/signup", "/register", "/login", "/form", "/apply", "/onboarding"}},
	{"dashboard", []string{"/dashboard", "/admin", "/console", "/analytics", "/settings", "/account"}},
	{"article", []string{"/article", "/blog", "/post", "/news", "/story", "/read"}},
	{"search", []string{"/search", "/results", "/query", "/find"}},
}

const structureJS = `() => {
	function depthOf(el) {
		let d = 0;
		let cur = el;
		while (cur.parentElement) {
			d++;
			cur = cur.parentElement;
		}
		return d;
	}
	const all = document.querySelectorAll('*');
	const interactive = document.querySelectorAll(
		'a, button, input, select, textarea, [role="button"], [role="link"], [onclick]');
	let maxDepth = 0;
	let totalChildren = 0;
	let parentCount = 0;
	for (const el of all) {
		const d = depthOf(el);
		if (d > maxDepth) maxDepth = d;
		if (el.children.length > 0) {
			totalChildren += el.children.length;
			parentCount++;
		}
	}
	const avgChildren = parentCount > 0 ? totalChildren / parentCount : 0;
	const hasCanvas = document.querySelectorAll('canvas, [data-canvas]').length > 0;
	let hasWebGL = false;
	for (const c of document.querySelectorAll('canvas')) {
		try {
			if (c.getContext('webgl') || c.getContext('webgl2')) { hasWebGL = true; break; }
		} catch (e) {}
	}
	return JSON.stringify({
		interactiveCount: interactive.length,
		nodeCount: all.length,
		maxDepth: maxDepth,
		avgChildren: avgChildren,
		hasCanvas: hasCanvas,
		hasWebGL: hasWebGL,
	});
}`

const a11yCoverageJS = `() => {
	const interactive = document.querySelectorAll(
		'a, button, input, select, textarea, [role="button"], [role="link"], [onclick]');
	let named = 0;
	for (const el of interactive) {
		if (el.getAttribute('aria-label') || el.getAttribute('aria-labelledby')
			|| el.getAttribute('title') || el.getAttribute('placeholder')
			|| (el.innerText && el.innerText.trim()) || el.value) {
			named++;
		}
	}
	const total = interactive.length;
	return JSON.stringify({named: named, total: total});
}`

// SignalExtractor computes PageSignals via two injected scripts.
type SignalExtractor struct{}

func NewSignalExtractor() *SignalExtractor { return &SignalExtractor{} }

// Extract computes PageSignals via two injected scripts. Spec §7: a
// transient Eval failure (detached frame, navigation mid-script) degrades
// to default signals — URL and page type only — rather than failing the
// caller; with zero coverage the default strategy's cascade then resolves
// to VISION.
func (s *SignalExtractor) Extract(page pageio.Page) (*state.PageSignals, error) {
	result, err := page.Eval(structureJS)
	if err != nil {
		return defaultSignals(page), nil
	}
	raw := unwrapJSON(result)

	cov, err := page.Eval(a11yCoverageJS)
	if err != nil {
		return defaultSignals(page), nil
	}
	covRaw := unwrapJSON(cov)

	named := covRaw.Get("named").Float()
	total := covRaw.Get("total").Float()
	coverage := 1.0
	if total > 0 {
		coverage = named / total
		if coverage > 1.0 {
			coverage = 1.0
		}
	}

	return &state.PageSignals{
		URL:              page.URL(),
		InteractiveCount: int(raw.Get("interactiveCount").Int()),
		NodeCount:        int(raw.Get("nodeCount").Int()),
		MaxDepth:         int(raw.Get("maxDepth").Int()),
		AvgChildren:      raw.Get("avgChildren").Float(),
		HasCanvas:        raw.Get("hasCanvas").Bool(),
		HasWebGL:         raw.Get("hasWebGL").Bool(),
		A11yCoverage:     coverage,
		PageType:         classifyPageType(page.URL()),
	}, nil
}

// defaultSignals is the degraded fallback when structural signals can't be
// read: no canvas/WebGL, zero coverage, so the strategy cascade falls
// through to its VISION default.
func defaultSignals(page pageio.Page) *state.PageSignals {
	return &state.PageSignals{
		URL:      page.URL(),
		PageType: classifyPageType(page.URL()),
	}
}

func classifyPageType(url string) string {
	// Origin always returns a prefix of url, so what remains is the path
	// (plus any query or fragment); the scheme's "//" never reaches a hint.
	path := url[len((&state.PageSignals{URL: url}).Origin()):]
	for _, p := range pageTypePatterns {
		for _, hint := range p.hints {
			if containsSubstring(path, hint) {
				return p.pageType
			}
		}
	}
	return "unknown"
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
