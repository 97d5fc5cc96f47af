package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/label-lookup/internal/errs"
)

var validate = validator.New()

type taggedRequest struct {
	Name  string `query:"name" validate:"required,min=3"`
	Limit int    `query:"limit" validate:"max=10"`
}

func (r *taggedRequest) Validate() error {
	return validate.Struct(r)
}

type customRequest struct {
	Name string `query:"name"`
}

func (r *customRequest) Validate() error {
	if r.Name == "bad" {
		return CustomValidationErrors{{Field: "name", Message: "is not allowed"}}
	}
	return nil
}

type envelopeRequest struct {
	Name string `query:"name"`
}

func (r *envelopeRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errs.NewBadRequestError("You must specify the name parameter.", true, nil, nil)
	}
	return nil
}

func newContext(target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestBindAndValidate_Success(t *testing.T) {
	req := &taggedRequest{}

	err := BindAndValidate(newContext("/?name=basic-science&limit=2"), req)

	require.NoError(t, err)
	assert.Equal(t, "basic-science", req.Name)
	assert.Equal(t, 2, req.Limit)
}

func TestBindAndValidate_TagErrors(t *testing.T) {
	err := BindAndValidate(newContext("/?name=ab&limit=11"), &taggedRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "must be at least 3 characters"},
		{Field: "limit", Error: "must not exceed 10"},
	}, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext("/?name=bad"), &customRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is not allowed"}}, httpErr.Errors)
}

func TestBindAndValidate_EnvelopePassesThrough(t *testing.T) {
	err := BindAndValidate(newContext("/?name=%20%20%20"), &envelopeRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, "You must specify the name parameter.", httpErr.Message)
	assert.True(t, httpErr.Override)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_BindError(t *testing.T) {
	err := BindAndValidate(newContext("/?name=abc&limit=many"), &taggedRequest{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.False(t, httpErr.Override)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindErrorMessage(t *testing.T) {
	assert.Equal(t, "bad input", bindErrorMessage(echo.NewHTTPError(http.StatusBadRequest, "bad input")))
	assert.Equal(t, "Invalid request", bindErrorMessage(echo.NewHTTPError(http.StatusBadRequest, 42)))
	assert.Equal(t, "Invalid request", bindErrorMessage(assert.AnError))
}
