package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/label-lookup/internal/model"
	"github.com/deppfellow/label-lookup/internal/server"
)

// labelKeyPrefix namespaces label hashes: label:<pretty_url_name>.
const labelKeyPrefix = "label:"

// Hash field names.
const (
	fieldPrettyUrlName = "pretty_url_name"
	fieldIdString      = "id_string"
	fieldLabel         = "label"
)

// RedisLabelRepository stores each label as a Redis hash.
type RedisLabelRepository struct {
	client *redis.Client
}

// NewRedisLabelRepository builds a RedisLabelRepository on the server's client.
func NewRedisLabelRepository(s *server.Server) *RedisLabelRepository {
	return &RedisLabelRepository{client: s.Redis}
}

func labelKey(name string) string {
	return labelKeyPrefix + name
}

// GetByName returns the label stored under label:<name>.
func (r *RedisLabelRepository) GetByName(ctx context.Context, name string) (model.LabelInformation, error) {
	fields, err := r.client.HGetAll(ctx, labelKey(name)).Result()
	if err != nil {
		return model.LabelInformation{}, errors.Wrapf(err, "reading label %q", name)
	}

	// HGETALL on a missing key returns an empty hash, not redis.Nil.
	if len(fields) == 0 {
		return model.LabelInformation{}, fmt.Errorf("label %q: %w", name, ErrLabelNotFound)
	}

	return labelFromHash(fields), nil
}

// Upsert writes all label fields in a single HSET.
func (r *RedisLabelRepository) Upsert(ctx context.Context, label model.LabelInformation) error {
	err := r.client.HSet(ctx, labelKey(label.PrettyUrlName), labelToHash(label)).Err()
	if err != nil {
		return errors.Wrapf(err, "writing label %q", label.PrettyUrlName)
	}
	return nil
}

func labelToHash(label model.LabelInformation) map[string]interface{} {
	return map[string]interface{}{
		fieldPrettyUrlName: label.PrettyUrlName,
		fieldIdString:      label.IdString,
		fieldLabel:         label.Label,
	}
}

func labelFromHash(fields map[string]string) model.LabelInformation {
	return model.LabelInformation{
		PrettyUrlName: fields[fieldPrettyUrlName],
		IdString:      fields[fieldIdString],
		Label:         fields[fieldLabel],
	}
}
