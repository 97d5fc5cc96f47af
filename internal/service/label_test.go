package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/label-lookup/internal/config"
	"github.com/deppfellow/label-lookup/internal/model"
	"github.com/deppfellow/label-lookup/internal/server"
)

type stubStore struct {
	labels   map[string]model.LabelInformation
	err      error
	deadline bool
	calls    []string
}

func (s *stubStore) GetByName(ctx context.Context, name string) (model.LabelInformation, error) {
	s.calls = append(s.calls, name)
	_, s.deadline = ctx.Deadline()

	if s.err != nil {
		return model.LabelInformation{}, s.err
	}
	label, ok := s.labels[name]
	if !ok {
		return model.LabelInformation{}, fmt.Errorf("label %q: %w", name, ErrLabelNotFound)
	}
	return label, nil
}

func newTestService(store LabelStore, timeout time.Duration) *LabelService {
	logger := zerolog.Nop()
	return NewLabelService(&server.Server{
		Config: &config.Config{Lookup: config.LookupConfig{QueryTimeout: timeout}},
		Logger: &logger,
	}, store)
}

var basicScience = model.LabelInformation{
	PrettyUrlName: "basic-science",
	IdString:      "basic_science",
	Label:         "Basic Science",
}

func TestLabelService_Get(t *testing.T) {
	store := &stubStore{labels: map[string]model.LabelInformation{"basic-science": basicScience}}
	svc := newTestService(store, 2*time.Second)

	label, err := svc.Get(context.Background(), "basic-science")

	require.NoError(t, err)
	assert.Equal(t, basicScience, label)
	assert.Equal(t, []string{"basic-science"}, store.calls)
	assert.True(t, store.deadline)
}

func TestLabelService_Get_NoTimeout(t *testing.T) {
	store := &stubStore{labels: map[string]model.LabelInformation{"basic-science": basicScience}}
	svc := newTestService(store, 0)

	_, err := svc.Get(context.Background(), "basic-science")

	require.NoError(t, err)
	assert.False(t, store.deadline)
}

func TestLabelService_Get_NotFound(t *testing.T) {
	svc := newTestService(&stubStore{}, 0)

	label, err := svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLabelNotFound))
	assert.Contains(t, err.Error(), `looking up label "missing"`)
	assert.Equal(t, model.LabelInformation{}, label)
}

func TestLabelService_Get_StoreFailure(t *testing.T) {
	storeErr := errors.New("Kaboom!")
	svc := newTestService(&stubStore{err: storeErr}, 0)

	_, err := svc.Get(context.Background(), "health-services-research")

	assert.ErrorIs(t, err, storeErr)
	assert.False(t, errors.Is(err, ErrLabelNotFound))
}
