package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/dashboard"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/domain"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/logger"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/service/serviceutils"
)

// EventsHandler receives the host dashboard's change notifications and
// pushes them into the registry, which fans them out to subscribers.
type EventsHandler struct {
	registry *dashboard.Registry
}

func NewEventsHandler(registry *dashboard.Registry) *EventsHandler {
	return &EventsHandler{registry: registry}
}

func (h *EventsHandler) FilterChangedHandler(c echo.Context) error {
	var req FilterChangedDTO
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if req.ViewID == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing view_id", nil)
	}

	filters := make([]domain.Filter, 0, len(req.Filters))
	for _, f := range req.Filters {
		filters = append(filters, f.ToFilter())
	}
	if err := h.registry.UpdateViewFilters(req.ViewID, filters); err != nil {
		return serviceutils.ResponseError(c, http.StatusNotFound, "View not found", err)
	}

	logger.InfoLog(c.Request().Context(), "Filter change applied to view %s (%d filters)", req.ViewID, len(filters))
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Filter change applied", nil)
}

func (h *EventsHandler) ParameterChangedHandler(c echo.Context) error {
	var req ParameterChangedDTO
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if req.Name == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing parameter name", nil)
	}

	h.registry.UpdateParameter(req.Name, req.Value)

	logger.InfoLog(c.Request().Context(), "Parameter %s changed", req.Name)
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Parameter change applied", nil)
}
