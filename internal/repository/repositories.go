package repository

import (
	"github.com/deppfellow/label-lookup/internal/config"
	"github.com/deppfellow/label-lookup/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	// Labels is the store selected by lookup.backend.
	Labels LabelStore

	Postgres *LabelRepository
	Redis    *RedisLabelRepository
}

// NewRepositories builds both label stores and selects the active one.
func NewRepositories(s *server.Server) *Repositories {
	repos := &Repositories{
		Postgres: NewLabelRepository(s),
		Redis:    NewRedisLabelRepository(s),
	}

	switch s.Config.Lookup.Backend {
	case config.BackendRedis:
		repos.Labels = repos.Redis
	default:
		repos.Labels = repos.Postgres
	}

	return repos
}
