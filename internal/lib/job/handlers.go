package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/label-lookup/internal/model"
	"github.com/deppfellow/label-lookup/internal/sqlerr"
)

// handleUpsertLabelTask decodes and validates the payload and writes it to
// the label store. Malformed payloads and rows the database rejects with a
// constraint violation are not retried.
func (j *JobService) handleUpsertLabelTask(ctx context.Context, t *asynq.Task) error {
	var label model.LabelInformation
	if err := json.Unmarshal(t.Payload(), &label); err != nil {
		return fmt.Errorf("failed to unmarshal label payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := validate.Struct(label); err != nil {
		return fmt.Errorf("invalid label payload: %v: %w", err, asynq.SkipRetry)
	}

	if j.labels == nil {
		return fmt.Errorf("label store not initialized")
	}

	logger := j.logger.With().
		Str("type", TaskUpsertLabel).
		Str("pretty_url_name", label.PrettyUrlName).
		Logger()

	logger.Info().Msg("Processing label upsert task")

	if err := j.labels.Upsert(ctx, label); err != nil {
		if sqlerr.Permanent(err) {
			logger.Error().
				Err(err).
				Str("db_error", string(sqlerr.ErrCode(err))).
				Str("reason", sqlerr.Describe(err)).
				Msg("Label rejected by store, not retrying")
			return fmt.Errorf("label %q rejected by store: %w: %w", label.PrettyUrlName, err, asynq.SkipRetry)
		}
		logger.Error().Err(err).Msg("Failed to upsert label")
		return err
	}

	logger.Info().Msg("Successfully upserted label")

	return nil
}
