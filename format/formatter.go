// Package format renders PageState/Delta into the plain-text blocks an
// agent reads, token-budgeting the result so it never blows past what the
// caller asked for.
package format

import (
	"fmt"
	"strings"

	"github.com/sanjitr11/browserlens/state"
	"github.com/sanjitr11/browserlens/tokenbudget"
)

const indent = "  "

// Formatter renders full and delta views separately, per spec — the
// Observer decides which to call, and whether a delta needs to be
// discarded in favor of a full render because it grew larger than one.
type Formatter struct {
	budget *tokenbudget.Budget
}

func New() *Formatter {
	return &Formatter{budget: tokenbudget.New()}
}

// Count exposes the underlying token counter so the Observer can compare a
// delta's size against a full state's size before committing to either.
func (f *Formatter) Count(text string) int {
	return f.budget.Count(text)
}

// FormatFull renders a complete page state, truncating to maxTokens.
func (f *Formatter) FormatFull(ps *state.PageState, step, maxTokens int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[FULL PAGE STATE — step %d]\n", step)
	fmt.Fprintf(&b, "URL: %s\n", ps.URL)
	fmt.Fprintf(&b, "Title: %s\n", ps.Title)
	fmt.Fprintf(&b, "Representation: %s\n", ps.Representation)
	if ps.Root != nil {
		renderNode(&b, ps.Root, 0)
	}
	if ps.Screenshot != nil {
		b.WriteString("[VISUAL: screenshot attached]\n")
	}

	out, _ := f.budget.Truncate(b.String(), maxTokens)
	return out
}

// FormatDelta renders a change set, truncating to maxTokens.
func (f *Formatter) FormatDelta(d *state.Delta, step int, maxTokens int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[DELTA — step %d — %d change(s)]\n", step, d.TotalChanges())

	if len(d.Added) > 0 {
		b.WriteString("ADDED:\n")
		for _, n := range d.Added {
			renderNode(&b, n, 1)
		}
	}
	if len(d.Removed) > 0 {
		b.WriteString("REMOVED:\n")
		for _, n := range d.Removed {
			renderNode(&b, n, 1)
		}
	}
	if len(d.Changed) > 0 {
		b.WriteString("CHANGED:\n")
		for _, c := range d.Changed {
			renderChange(&b, c)
		}
	}
	if d.UnchangedSummary != "" {
		fmt.Fprintf(&b, "UNCHANGED: %s\n", d.UnchangedSummary)
	}

	out, _ := f.budget.Truncate(b.String(), maxTokens)
	return out
}

func renderNode(b *strings.Builder, n *state.StateNode, depth int) {
	b.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(b, "- %s %q [%s]", n.Role, n.Name, n.Ref)
	if props := formatProps(n); props != "" {
		fmt.Fprintf(b, " (%s)", props)
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		renderNode(b, c, depth+1)
	}
}

func formatProps(n *state.StateNode) string {
	var parts []string
	if n.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", n.Value))
	}
	if n.Checked != state.TriUnset {
		parts = append(parts, "checked="+n.Checked.String())
	}
	if n.Expanded != state.TriUnset {
		parts = append(parts, "expanded="+n.Expanded.String())
	}
	if n.Disabled {
		parts = append(parts, "disabled=true")
	}
	if n.Focused {
		parts = append(parts, "focused=true")
	}
	return strings.Join(parts, ", ")
}

func renderChange(b *strings.Builder, c *state.NodeChange) {
	b.WriteString(indent)
	fmt.Fprintf(b, "- %s %q [%s] — ", c.Role, c.Name, c.Ref)

	var parts []string
	for _, prop := range []string{"value", "checked", "expanded", "disabled", "focused", "live"} {
		if v, ok := c.ChangedProps[prop]; ok {
			parts = append(parts, fmt.Sprintf("%s: %q → %q", prop, v[0], v[1]))
		}
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("\n")
}
