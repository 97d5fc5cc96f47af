package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/label-lookup/internal/model"
	"github.com/deppfellow/label-lookup/internal/repository"
	"github.com/deppfellow/label-lookup/internal/server"
)

// ErrLabelNotFound reports that no label matches the requested name.
var ErrLabelNotFound = repository.ErrLabelNotFound

// LabelStore is the read side of a label backend.
type LabelStore interface {
	GetByName(ctx context.Context, name string) (model.LabelInformation, error)
}

// LabelService resolves pretty URL names to label records.
type LabelService struct {
	store        LabelStore
	logger       *zerolog.Logger
	queryTimeout time.Duration
}

// NewLabelService builds a LabelService reading from store.
func NewLabelService(s *server.Server, store LabelStore) *LabelService {
	return &LabelService{
		store:        store,
		logger:       s.Logger,
		queryTimeout: s.Config.Lookup.QueryTimeout,
	}
}

// Get returns the label for name.
//
// The lookup is bounded by the configured query timeout. Errors are wrapped
// with the requested name; a missing label matches ErrLabelNotFound.
func (s *LabelService) Get(ctx context.Context, name string) (model.LabelInformation, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	label, err := s.store.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrLabelNotFound) {
			s.logger.Debug().Str("name", name).Msg("label not found")
		}
		return model.LabelInformation{}, errors.Wrapf(err, "looking up label %q", name)
	}

	return label, nil
}
