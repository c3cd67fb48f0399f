package ports

import (
	"context"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
)

// SelectionRecord is the persisted form of an accepted draw.
type SelectionRecord struct {
	Selection sampling.Selection
	Reports   []sampling.ConstraintReport
}

// SelectionRepository persists accepted selections and their statistics.
type SelectionRepository interface {
	Save(ctx context.Context, record SelectionRecord) error
	Get(ctx context.Context, id core.SearchID) (*SelectionRecord, error)
}
