// Package source loads the reporting workbook: the general ledger, its
// dimension tables, and the three statement-structure mappings.
package source

import (
	"context"

	"github.com/sazfar/finrep/internal/model"
)

// Source delivers the typed tables the reporting engine consumes.
type Source interface {
	Load(ctx context.Context) (*model.Dataset, error)
}

// Static is an in-memory Source, used by tests and demos.
type Static struct {
	Data *model.Dataset
}

// Load returns the static dataset.
func (s *Static) Load(_ context.Context) (*model.Dataset, error) {
	return s.Data, nil
}
