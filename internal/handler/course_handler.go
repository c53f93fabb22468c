package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusdash/course-api/internal/dto"
	"github.com/campusdash/course-api/internal/middleware"
	"github.com/campusdash/course-api/internal/models"
	appErrors "github.com/campusdash/course-api/pkg/errors"
	"github.com/campusdash/course-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context) (*dto.CourseListResponse, bool, error)
	GetByKey(ctx context.Context, key string) (*models.MergedCourse, error)
	Subjects(ctx context.Context) ([]string, error)
	GetBySubject(ctx context.Context, subject string) ([]models.MergedCourse, error)
	CourseNumbers(ctx context.Context) ([]string, error)
	EnrollmentStats(ctx context.Context) (*dto.EnrollmentStatsResponse, bool, error)
}

// CourseHandler wires the course query service to HTTP endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List godoc
// @Summary List courses with run metadata
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	list, cacheHit, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, list, middleware.ExtractMeta(c))
}

// GetByKey godoc
// @Summary Get one course by key
// @Tags Courses
// @Produce json
// @Param courseKey path string true "Course key, e.g. CMPS-280"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{courseKey} [get]
func (h *CourseHandler) GetByKey(c *gin.Context) {
	key := strings.TrimSpace(c.Param("courseKey"))
	if key == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courseKey is required"))
		return
	}
	course, err := h.service.GetByKey(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Subjects godoc
// @Summary List distinct subjects
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/subjects [get]
func (h *CourseHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.Subjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SubjectListResponse{Subjects: subjects})
}

// GetBySubject godoc
// @Summary List courses for one subject
// @Tags Courses
// @Produce json
// @Param subject path string true "Subject prefix, e.g. CMPS"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/subjects/{subject} [get]
func (h *CourseHandler) GetBySubject(c *gin.Context) {
	subject := strings.TrimSpace(c.Param("subject"))
	if subject == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subject is required"))
		return
	}
	courses, err := h.service.GetBySubject(c.Request.Context(), subject)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// CourseNumbers godoc
// @Summary List distinct course numbers
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/list [get]
func (h *CourseHandler) CourseNumbers(c *gin.Context) {
	numbers, err := h.service.CourseNumbers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, numbers)
}

// EnrollmentStats godoc
// @Summary Aggregate enrollment statistics
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/stats/enrollment [get]
func (h *CourseHandler) EnrollmentStats(c *gin.Context) {
	stats, cacheHit, err := h.service.EnrollmentStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, stats, middleware.ExtractMeta(c))
}
