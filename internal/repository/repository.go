// Package repository handles all interactions with the label stores.
//
// It contains the SQL and Redis commands that fetch and persist label
// records, keeping storage details away from the service layer.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/label-lookup/internal/model"
)

// ErrLabelNotFound is returned, wrapped, when no label matches a name.
var ErrLabelNotFound = errors.New("label not found")

// LabelStore is implemented by every label backend.
type LabelStore interface {
	GetByName(ctx context.Context, name string) (model.LabelInformation, error)
	Upsert(ctx context.Context, label model.LabelInformation) error
}
