package extract

import (
	"context"
	"fmt"

	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/state"
	"github.com/tidwall/gjson"
)

// DOMExtractor distills the live DOM into a StateNode tree via a single
// injected script, rather than going through the CDP accessibility tree.
// It catches interactive elements the AX tree sometimes drops (custom
// components with no ARIA role at all) at the cost of more noise.
// Grounded on extractors/dom.py's _DOM_EXTRACTION_JS.
type DOMExtractor struct {
	MaxDepth int
}

func NewDOMExtractor() *DOMExtractor {
	return &DOMExtractor{MaxDepth: 20}
}

func (e *DOMExtractor) RepresentationType() state.RepresentationType {
	return state.DistilledDOM
}

const domExtractionJS = `() => {
	const KEPT_TAGS = new Set(['a','button','input','select','textarea','form',
		'h1','h2','h3','h4','h5','h6','label','img','nav','main','header',
		'footer','article','section','table','ul','ol','li','dialog']);

	function inputRole(el) {
		const type = (el.getAttribute('type') || 'text').toLowerCase();
		if (type === 'checkbox') return 'checkbox';
		if (type === 'radio') return 'radio';
		if (type === 'submit' || type === 'button') return 'button';
		return 'textbox';
	}

	function getRole(el) {
		const explicit = el.getAttribute('role');
		if (explicit) return explicit;
		const tag = el.tagName.toLowerCase();
		switch (tag) {
			case 'a': return el.hasAttribute('href') ? 'link' : 'generic';
			case 'button': return 'button';
			case 'input': return inputRole(el);
			case 'select': return 'combobox';
			case 'textarea': return 'textbox';
			case 'img': return 'image';
			case 'nav': return 'navigation';
			case 'main': return 'main';
			case 'header': return 'banner';
			case 'footer': return 'contentinfo';
			case 'form': return 'form';
			case 'ul': case 'ol': return 'list';
			case 'li': return 'listitem';
			case 'table': return 'table';
			case 'dialog': return 'dialog';
			case 'h1': case 'h2': case 'h3': case 'h4': case 'h5': case 'h6': return 'heading';
			default: return 'generic';
		}
	}

	function getName(el) {
		return el.getAttribute('aria-label')
			|| el.getAttribute('alt')
			|| el.getAttribute('placeholder')
			|| el.getAttribute('title')
			|| (el.innerText ? el.innerText.trim().slice(0, 100) : '')
			|| '';
	}

	function hasKeptDescendant(el) {
		for (const child of el.children) {
			if (KEPT_TAGS.has(child.tagName.toLowerCase())) return true;
			if (hasKeptDescendant(child)) return true;
		}
		return false;
	}

	function serializeNode(el, depth, maxDepth) {
		if (depth > maxDepth) return null;
		const tag = el.tagName.toLowerCase();
		const kept = KEPT_TAGS.has(tag);
		if (!kept && !hasKeptDescendant(el)) return null;

		const children = [];
		for (const child of el.children) {
			const c = serializeNode(child, depth + 1, maxDepth);
			if (c) children.push(c);
		}

		if (!kept && children.length === 0) return null;

		const node = {
			role: getRole(el),
			name: kept ? getName(el) : '',
			value: (tag === 'input' || tag === 'textarea' || tag === 'select') ? (el.value || '') : '',
			checked: (tag === 'input' && (el.type === 'checkbox' || el.type === 'radio')) ? String(!!el.checked) : '',
			expanded: el.hasAttribute('aria-expanded') ? String(el.getAttribute('aria-expanded') === 'true') : '',
			disabled: !!el.disabled,
			focused: document.activeElement === el,
			live: el.getAttribute('aria-live') || '',
			children: children,
		};
		return node;
	}

	return JSON.stringify(serializeNode(document.body, 0, 20) || {role: 'generic', name: '', children: []});
}`

func (e *DOMExtractor) Extract(ctx context.Context, page pageio.Page) (*state.PageState, error) {
	result, err := page.Eval(domExtractionJS)
	if err != nil {
		return nil, fmt.Errorf("dom extraction failed: %w", err)
	}

	root := jsonNodeToStateNode(result)
	return &state.PageState{
		Root:           root,
		URL:            page.URL(),
		Title:          page.Title(),
		Representation: state.DistilledDOM,
	}, nil
}

// jsonNodeToStateNode parses the JSON-serialized tree produced by
// domExtractionJS. result may be a JSON string (from Eval(...).String())
// or, for test fakes, already-parsed JSON.
func jsonNodeToStateNode(result gjson.Result) *state.StateNode {
	raw := result
	if result.Type == gjson.String {
		raw = gjson.Parse(result.String())
	}
	return parseJSONNode(raw)
}

func parseJSONNode(v gjson.Result) *state.StateNode {
	if !v.Exists() {
		return nil
	}
	n := &state.StateNode{
		Role:     v.Get("role").String(),
		Name:     v.Get("name").String(),
		Value:    v.Get("value").String(),
		Checked:  triStateFromString(v.Get("checked").String()),
		Expanded: triStateFromString(v.Get("expanded").String()),
		Disabled: v.Get("disabled").Bool(),
		Focused:  v.Get("focused").Bool(),
		Live:     v.Get("live").String(),
	}
	for _, c := range v.Get("children").Array() {
		if child := parseJSONNode(c); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}
