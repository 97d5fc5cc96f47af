package handler

import (
	"context"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/label-lookup/internal/errs"
	"github.com/deppfellow/label-lookup/internal/middleware"
	"github.com/deppfellow/label-lookup/internal/model"
	"github.com/deppfellow/label-lookup/internal/server"
)

// Client-facing messages of the lookup endpoint. "occured" is kept as
// existing clients match on it.
const (
	MessageNameRequired = "You must specify the name parameter."
	MessageLookupFailed = "Errors occured."
)

// LabelLookupService resolves a label name to its record.
type LabelLookupService interface {
	Get(ctx context.Context, name string) (model.LabelInformation, error)
}

// LabelLookupHandler serves label lookups by name.
//
// Its service is set at construction and never changed, so one handler is
// safe to share across requests.
type LabelLookupHandler struct {
	Handler
	service LabelLookupService
}

// NewLabelLookupHandler constructs a LabelLookupHandler.
func NewLabelLookupHandler(s *server.Server, svc LabelLookupService) *LabelLookupHandler {
	return &LabelLookupHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// Get validates name and resolves it through the service.
//
// A blank name fails with a 400 errs.HTTPError and the service is not
// called. Otherwise the service is called once with name as given. Any
// service error is logged and replaced by a 500 errs.HTTPError that carries
// none of its detail.
func (h *LabelLookupHandler) Get(ctx context.Context, name string) (model.LabelInformation, error) {
	if strings.TrimSpace(name) == "" {
		return model.LabelInformation{}, errs.NewBadRequestError(MessageNameRequired, true, nil, nil)
	}

	label, err := h.service.Get(ctx, name)
	if err != nil {
		middleware.LoggerFromContext(ctx, h.server.Logger).Error().
			Err(err).
			Str("name", name).
			Msg("label lookup failed")
		return model.LabelInformation{}, errs.NewInternalServerErrorWithMessage(MessageLookupFailed)
	}

	return label, nil
}

// GetLabelRequest carries the name from either the path or the query string.
// A missing parameter binds as "".
type GetLabelRequest struct {
	Name string `param:"name" query:"name"`
}

// Validate accepts every request; blank names are rejected by Get so the
// rule also holds for callers outside HTTP.
func (r *GetLabelRequest) Validate() error {
	return nil
}

// GetLabel handles GET /api/v1/label-lookup and GET /api/v1/label-lookup/:name.
func (h *LabelLookupHandler) GetLabel(c echo.Context, req *GetLabelRequest) (model.LabelInformation, error) {
	return h.Get(c.Request().Context(), pathUnescapedName(c, req.Name))
}

// pathUnescapedName decodes a name taken from the path. Echo routes on the
// raw path when it holds escapes such as %2F, leaving them in the param.
func pathUnescapedName(c echo.Context, name string) string {
	if c.Request().URL.RawPath == "" || name == "" || name != c.Param("name") {
		return name
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
