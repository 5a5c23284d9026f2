// Package tokenbudget counts and truncates text against a token budget so
// the Formatter never hands an agent more context than it asked for.
package tokenbudget

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// charsPerToken is the fallback heuristic used when the BPE encoder
	// cannot be loaded (e.g. offline, or the vocab file is missing).
	charsPerToken = 4

	// truncationSuffix is appended whenever text is cut to fit a budget.
	truncationSuffix = "\n[... truncated to fit token budget ...]"

	encodingName = "cl100k_base"
)

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
)

func encoder() *tiktoken.Tiktoken {
	encOnce.Do(func() {
		e, err := tiktoken.GetEncoding(encodingName)
		if err == nil {
			enc = e
		}
	})
	return enc
}

// Budget counts tokens in rendered text and truncates it to fit a limit.
// Stateless aside from the lazily-initialized, read-only global encoder.
type Budget struct{}

// New returns a ready-to-use Budget.
func New() *Budget {
	return &Budget{}
}

// Count returns the number of tokens text would consume. Uses a real BPE
// encoder when available, otherwise a chars-per-token heuristic.
func (b *Budget) Count(text string) int {
	if e := encoder(); e != nil {
		return len(e.Encode(text, nil, nil))
	}
	return heuristicCount(text)
}

func heuristicCount(text string) int {
	n := len(text) / charsPerToken
	if n == 0 && text != "" {
		n = 1
	}
	return n
}

// Fits reports whether text's token count is at most maxTokens.
func (b *Budget) Fits(text string, maxTokens int) bool {
	return b.Count(text) <= maxTokens
}

// Truncate returns text unchanged with ok=false if it already fits within
// maxTokens. Otherwise it trims text to fit and appends truncationSuffix,
// returning ok=true.
func (b *Budget) Truncate(text string, maxTokens int) (string, bool) {
	if maxTokens <= 0 {
		return truncationSuffix[1:], true
	}
	if b.Fits(text, maxTokens) {
		return text, false
	}

	suffixTokens := b.Count(truncationSuffix)
	budget := maxTokens - suffixTokens
	if budget < 0 {
		budget = 0
	}

	if e := encoder(); e != nil {
		toks := e.Encode(text, nil, nil)
		if budget > len(toks) {
			budget = len(toks)
		}
		truncated := e.Decode(toks[:budget])
		return truncated + truncationSuffix, true
	}

	cutoff := budget * charsPerToken
	if cutoff > len(text) {
		cutoff = len(text)
	}
	return strings.TrimRight(text[:cutoff], " \t\n") + truncationSuffix, true
}
