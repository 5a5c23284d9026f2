package router

import "github.com/sanjitr11/browserlens/state"

// Strategy picks a representation from signals. It's an interface so
// tests and callers can override the decision cascade (spec.md's debug
// surface requirement).
type Strategy interface {
	Select(signals *state.PageSignals) state.RepresentationType
}

// DefaultStrategy implements the five-rule cascade, in order, from
// router/strategies.py:
//
//  1. (has_canvas or has_webgl) and a11y_coverage < 0.5 -> HYBRID
//  2. a11y_coverage >= 0.8 -> A11Y_TREE
//  3. node_count < 2000 and a11y_coverage >= 0.5 -> DISTILLED_DOM
//  4. a11y_coverage >= 0.3 -> HYBRID
//  5. otherwise -> VISION
type DefaultStrategy struct{}

func NewDefaultStrategy() *DefaultStrategy { return &DefaultStrategy{} }

func (s *DefaultStrategy) Select(sig *state.PageSignals) state.RepresentationType {
	switch {
	case (sig.HasCanvas || sig.HasWebGL) && sig.A11yCoverage < 0.5:
		return state.Hybrid
	case sig.A11yCoverage >= 0.8:
		return state.A11yTree
	case sig.NodeCount < 2000 && sig.A11yCoverage >= 0.5:
		return state.DistilledDOM
	case sig.A11yCoverage >= 0.3:
		return state.Hybrid
	default:
		return state.Vision
	}
}
