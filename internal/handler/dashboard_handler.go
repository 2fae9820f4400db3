package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/dashboard"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/service"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/service/serviceutils"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) GetDashboardHandler(c echo.Context) error {
	resp := DashboardResponse{
		Name:  h.svc.DashboardName(),
		Views: h.svc.ListViews(c.Request().Context()),
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Dashboard retrieved successfully", resp)
}

func (h *DashboardHandler) ListViewsHandler(c echo.Context) error {
	views := h.svc.ListViews(c.Request().Context())
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Views listed successfully", views)
}

func (h *DashboardHandler) ViewColumnsHandler(c echo.Context) error {
	columns, err := h.svc.ViewColumns(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, dashboard.ErrViewNotFound) {
			return serviceutils.ResponseError(c, http.StatusNotFound, "View not found", err)
		}
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to get view columns", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "View columns retrieved successfully", columns)
}

func (h *DashboardHandler) RefreshHandler(c echo.Context) error {
	views := h.svc.RefreshViews(c.Request().Context())
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Views refreshed successfully", views)
}
