package repository

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/label-lookup/internal/config"
	"github.com/deppfellow/label-lookup/internal/model"
	"github.com/deppfellow/label-lookup/internal/server"
)

func newTestServer(backend string) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Lookup:        config.LookupConfig{Backend: backend},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func TestNewRepositories_SelectsBackend(t *testing.T) {
	tests := []struct {
		backend  string
		expected func(r *Repositories) LabelStore
	}{
		{config.BackendPostgres, func(r *Repositories) LabelStore { return r.Postgres }},
		{config.BackendRedis, func(r *Repositories) LabelStore { return r.Redis }},
	}

	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			repos := NewRepositories(newTestServer(tc.backend))

			assert.Same(t, tc.expected(repos), repos.Labels)
		})
	}
}

func TestNewLabelRepository_SlowThreshold(t *testing.T) {
	repo := NewLabelRepository(newTestServer(config.BackendPostgres))

	assert.Equal(t, 100*time.Millisecond, repo.slowThreshold)
	assert.Nil(t, repo.pool)
}

func TestLabelKey(t *testing.T) {
	assert.Equal(t, "label:basic-science", labelKey("basic-science"))
}

func TestLabelHash(t *testing.T) {
	label := model.LabelInformation{
		PrettyUrlName: "basic-science",
		IdString:      "basic_science",
		Label:         "Basic Science",
	}

	hash := labelToHash(label)
	assert.Equal(t, "basic-science", hash["pretty_url_name"])
	assert.Equal(t, "basic_science", hash["id_string"])
	assert.Equal(t, "Basic Science", hash["label"])

	assert.Equal(t, label, labelFromHash(map[string]string{
		"pretty_url_name": "basic-science",
		"id_string":       "basic_science",
		"label":           "Basic Science",
	}))
}
