package job

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"

	"github.com/deppfellow/label-lookup/internal/model"
)

// TaskUpsertLabel is the task type for writing one label record.
const TaskUpsertLabel = "label:upsert"

var validate = validator.New()

// NewUpsertLabelTask builds a label upsert task.
//
// The label is validated before it is queued. Options: up to 3 retries,
// "default" queue, 30s handler timeout.
func NewUpsertLabelTask(label model.LabelInformation) (*asynq.Task, error) {
	if err := validate.Struct(label); err != nil {
		return nil, errors.Wrap(err, "invalid label")
	}

	payload, err := json.Marshal(label)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskUpsertLabel,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
