package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/label-lookup/internal/model"
)

type fakeLabelWriter struct {
	written []model.LabelInformation
	err     error
}

func (f *fakeLabelWriter) Upsert(_ context.Context, label model.LabelInformation) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, label)
	return nil
}

func newTestJobService(writer LabelWriter) *JobService {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	j.InitHandlers(writer)
	return j
}

var basicScience = model.LabelInformation{
	PrettyUrlName: "basic-science",
	IdString:      "basic_science",
	Label:         "Basic Science",
}

func TestNewUpsertLabelTask(t *testing.T) {
	task, err := NewUpsertLabelTask(basicScience)
	require.NoError(t, err)

	assert.Equal(t, TaskUpsertLabel, task.Type())

	var decoded model.LabelInformation
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, basicScience, decoded)
}

func TestNewUpsertLabelTask_Invalid(t *testing.T) {
	_, err := NewUpsertLabelTask(model.LabelInformation{PrettyUrlName: "basic-science"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid label")
}

func TestHandleUpsertLabelTask(t *testing.T) {
	writer := &fakeLabelWriter{}
	j := newTestJobService(writer)

	task, err := NewUpsertLabelTask(basicScience)
	require.NoError(t, err)

	require.NoError(t, j.handleUpsertLabelTask(context.Background(), task))
	assert.Equal(t, []model.LabelInformation{basicScience}, writer.written)
}

func TestHandleUpsertLabelTask_MalformedPayloadSkipsRetry(t *testing.T) {
	writer := &fakeLabelWriter{}
	j := newTestJobService(writer)

	tests := []struct {
		name    string
		payload []byte
	}{
		{"not json", []byte("{")},
		{"missing fields", []byte(`{"prettyUrlName":"basic-science"}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := j.handleUpsertLabelTask(context.Background(), asynq.NewTask(TaskUpsertLabel, tc.payload))

			require.Error(t, err)
			assert.True(t, errors.Is(err, asynq.SkipRetry))
		})
	}
	assert.Empty(t, writer.written)
}

func TestHandleUpsertLabelTask_StoreFailureIsRetried(t *testing.T) {
	storeErr := errors.New("connection refused")
	j := newTestJobService(&fakeLabelWriter{err: storeErr})

	task, err := NewUpsertLabelTask(basicScience)
	require.NoError(t, err)

	err = j.handleUpsertLabelTask(context.Background(), task)

	assert.ErrorIs(t, err, storeErr)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleUpsertLabelTask_ConstraintViolationSkipsRetry(t *testing.T) {
	tests := []struct {
		name  string
		pgErr *pgconn.PgError
	}{
		{
			name:  "not null",
			pgErr: &pgconn.PgError{Code: "23502", TableName: "labels", ColumnName: "id_string"},
		},
		{
			name:  "check",
			pgErr: &pgconn.PgError{Code: "23514", TableName: "labels", ConstraintName: "labels_pretty_url_name_check"},
		},
		{
			name:  "unique",
			pgErr: &pgconn.PgError{Code: "23505", TableName: "labels", ConstraintName: "labels_id_string_key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storeErr := fmt.Errorf("upserting label %q: %w", basicScience.PrettyUrlName, tt.pgErr)
			writer := &fakeLabelWriter{err: storeErr}
			j := newTestJobService(writer)

			task, err := NewUpsertLabelTask(basicScience)
			require.NoError(t, err)

			err = j.handleUpsertLabelTask(context.Background(), task)

			require.Error(t, err)
			assert.ErrorIs(t, err, asynq.SkipRetry)
			assert.ErrorIs(t, err, tt.pgErr)
			assert.Contains(t, err.Error(), "basic-science")
			assert.Empty(t, writer.written)
		})
	}
}

func TestHandleUpsertLabelTask_ConnectionFailureIsRetried(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "08006", Message: "connection failure"}
	j := newTestJobService(&fakeLabelWriter{err: fmt.Errorf("upserting label: %w", pgErr)})

	task, err := NewUpsertLabelTask(basicScience)
	require.NoError(t, err)

	err = j.handleUpsertLabelTask(context.Background(), task)

	assert.ErrorIs(t, err, pgErr)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestMux_RoutesUpsertLabel(t *testing.T) {
	writer := &fakeLabelWriter{}
	j := newTestJobService(writer)

	task, err := NewUpsertLabelTask(basicScience)
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	assert.Len(t, writer.written, 1)
}
