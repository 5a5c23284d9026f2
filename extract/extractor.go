package extract

import (
	"context"

	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/state"
)

// Extractor produces a normalized PageState from a live page.
type Extractor interface {
	RepresentationType() state.RepresentationType
	Extract(ctx context.Context, page pageio.Page) (*state.PageState, error)
}
