package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusdash/course-api/internal/dto"
	"github.com/campusdash/course-api/internal/service"
	appErrors "github.com/campusdash/course-api/pkg/errors"
	"github.com/campusdash/course-api/pkg/response"
)

type reportExporter interface {
	EnrollmentReport(ctx context.Context, req dto.ExportRequest) (*service.ExportResult, error)
}

// ExportHandler serves downloadable enrollment reports.
type ExportHandler struct {
	exporter reportExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(exporter reportExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Enrollment godoc
// @Summary Download the enrollment overview report
// @Tags Courses
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /courses/export [get]
func (h *ExportHandler) Enrollment(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = "csv"
	}
	result, err := h.exporter.EnrollmentReport(c.Request.Context(), dto.ExportRequest{Format: format})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
