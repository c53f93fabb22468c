package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdash/course-api/internal/dto"
	appErrors "github.com/campusdash/course-api/pkg/errors"
)

func TestEnrollmentReportCSV(t *testing.T) {
	svc := NewExportService(newCourseService(t), nil, nil)

	result, err := svc.EnrollmentReport(context.Background(), dto.ExportRequest{Format: "csv"})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "enrollment-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Course,Name,Sections,Enrolled,Capacity,Available,Excess,Utilization %", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "CMPS-161")
	assert.Contains(t, lines[1], "95.00")
}

func TestEnrollmentReportPDF(t *testing.T) {
	svc := NewExportService(newCourseService(t), nil, nil)

	result, err := svc.EnrollmentReport(context.Background(), dto.ExportRequest{Format: "pdf"})
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.True(t, len(result.Data) > 0)
}

func TestEnrollmentReportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(newCourseService(t), nil, nil)

	_, err := svc.EnrollmentReport(context.Background(), dto.ExportRequest{Format: "xlsx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentReportWithoutDataset(t *testing.T) {
	svc := NewExportService(NewCourseService(nil, nil, nil), nil, nil)

	_, err := svc.EnrollmentReport(context.Background(), dto.ExportRequest{Format: "csv"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDatasetUnavailable.Code, appErrors.FromError(err).Code)
}
