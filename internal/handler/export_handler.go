package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/service"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/service/serviceutils"
)

type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) ExportHandler(c echo.Context) error {
	var req ExportRequestDTO
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if len(req.Views) == 0 {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "No views selected", nil)
	}

	result, err := h.svc.Export(c.Request().Context(), req.ToDomain())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Export failed", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Export completed successfully", result)
}

func (h *ExportHandler) DownloadHandler(c echo.Context) error {
	path, err := h.svc.ExportFilePath(c.Param("filename"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Export file not found", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to read export file", err)
	}

	// Set headers for file download
	c.Response().Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filepath.Base(path)))
	c.Response().Header().Set("Content-Length", strconv.Itoa(len(data)))

	_, err = c.Response().Write(data)
	return err
}
