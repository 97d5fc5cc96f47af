package handler

import (
	"github.com/deppfellow/label-lookup/internal/server"
	"github.com/deppfellow/label-lookup/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Label   *LabelLookupHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Label:   NewLabelLookupHandler(s, services.Label),
	}
}
