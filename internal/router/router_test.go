package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/label-lookup/internal/config"
	"github.com/deppfellow/label-lookup/internal/handler"
	"github.com/deppfellow/label-lookup/internal/middleware"
	"github.com/deppfellow/label-lookup/internal/model"
	"github.com/deppfellow/label-lookup/internal/server"
)

type fakeLookup map[string]model.LabelInformation

func (f fakeLookup) Get(_ context.Context, name string) (model.LabelInformation, error) {
	label, ok := f[name]
	if !ok {
		return model.LabelInformation{}, errors.New("label not found")
	}
	return label, nil
}

func newTestRouter() http.Handler {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Lookup:  config.LookupConfig{Backend: config.BackendPostgres},
		},
		Logger: &logger,
	}

	h := &handler.Handlers{
		Health:  handler.NewHealthHandler(s),
		OpenAPI: handler.NewOpenAPIHandler(s),
		Label: handler.NewLabelLookupHandler(s, fakeLookup{
			"basic-science": {PrettyUrlName: "basic-science", IdString: "basic_science", Label: "Basic Science"},
		}),
	}

	return NewRouter(s, h)
}

func TestNewRouter_Routes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
	}{
		{"lookup by query", http.MethodGet, "/api/v1/label-lookup?name=basic-science", http.StatusOK},
		{"lookup by path", http.MethodGet, "/api/v1/label-lookup/basic-science", http.StatusOK},
		{"lookup without name", http.MethodGet, "/api/v1/label-lookup", http.StatusBadRequest},
		{"lookup with trailing slash", http.MethodGet, "/api/v1/label-lookup/", http.StatusBadRequest},
		{"lookup by query with trailing slash", http.MethodGet, "/api/v1/label-lookup/?name=basic-science", http.StatusOK},
		{"lookup failure", http.MethodGet, "/api/v1/label-lookup/unknown", http.StatusInternalServerError},
		{"status", http.MethodGet, "/status", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}
