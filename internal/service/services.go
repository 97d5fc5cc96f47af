package service

import (
	"github.com/deppfellow/label-lookup/internal/lib/job"
	"github.com/deppfellow/label-lookup/internal/repository"
	"github.com/deppfellow/label-lookup/internal/server"
)

// Services groups the business-layer services.
type Services struct {
	Label *LabelService
	Job   *job.JobService
}

// NewService wires services onto the selected repositories.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Label: NewLabelService(s, repos.Labels),
		Job:   s.Job,
	}, nil
}
