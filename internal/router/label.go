package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/label-lookup/internal/handler"
)

// registerLabelRoutes registers the label lookup endpoint. The name may be
// given as a path segment or as the name query parameter.
func registerLabelRoutes(r *echo.Group, h *handler.Handlers) {
	newReq := func() *handler.GetLabelRequest { return &handler.GetLabelRequest{} }
	getLabel := handler.Handle(h.Label.Handler, h.Label.GetLabel, http.StatusOK, newReq)

	labels := r.Group("/label-lookup")
	labels.GET("", getLabel)
	labels.GET("/", getLabel)
	labels.GET("/:name", getLabel)
}
