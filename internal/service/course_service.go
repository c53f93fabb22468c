package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/campusdash/course-api/internal/coursekey"
	"github.com/campusdash/course-api/internal/dto"
	"github.com/campusdash/course-api/internal/models"
	appErrors "github.com/campusdash/course-api/pkg/errors"
)

const (
	cacheKeyList  = "courses:list"
	cacheKeyStats = "courses:stats"
)

// CourseService serves read-only queries over an immutable dataset
// snapshot. Reload swaps the snapshot wholesale; readers never observe a
// partially refreshed dataset.
type CourseService struct {
	mu      sync.RWMutex
	dataset *models.Dataset
	byKey   map[string]int

	cache  *CacheService
	logger *zap.Logger
}

// NewCourseService constructs the service around an optional initial
// snapshot.
func NewCourseService(dataset *models.Dataset, cache *CacheService, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CourseService{cache: cache, logger: logger}
	if dataset != nil {
		s.Reload(context.Background(), dataset)
	}
	return s
}

// Reload replaces the served snapshot and drops any cached responses
// derived from the previous one.
func (s *CourseService) Reload(ctx context.Context, dataset *models.Dataset) {
	byKey := make(map[string]int, len(dataset.Courses))
	for i, course := range dataset.Courses {
		byKey[course.CourseKey] = i
	}

	s.mu.Lock()
	s.dataset = dataset
	s.byKey = byKey
	s.mu.Unlock()

	if s.cache != nil {
		s.cache.Invalidate(ctx, "courses:*")
	}
	s.logger.Sugar().Infow("dataset snapshot loaded",
		"run_id", dataset.Metadata.RunID,
		"courses", dataset.Metadata.TotalCourses,
	)
}

// snapshot returns the current dataset or a typed unavailable error.
func (s *CourseService) snapshot() (*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, appErrors.ErrDatasetUnavailable
	}
	return s.dataset, nil
}

// List returns run metadata plus per-course summaries. The second result
// reports whether the payload came from cache.
func (s *CourseService) List(ctx context.Context) (*dto.CourseListResponse, bool, error) {
	cached := &dto.CourseListResponse{}
	if s.cache.Get(ctx, cacheKeyList, cached) {
		return cached, true, nil
	}

	dataset, err := s.snapshot()
	if err != nil {
		return nil, false, err
	}

	summaries := make([]dto.CourseSummary, 0, len(dataset.Courses))
	for _, course := range dataset.Courses {
		summaries = append(summaries, summarize(course))
	}

	resp := &dto.CourseListResponse{Metadata: dataset.Metadata, Courses: summaries}
	s.cache.Set(ctx, cacheKeyList, resp)
	return resp, false, nil
}

// GetByKey returns the full merged course for a key. Lookup is
// case-insensitive and tolerant of separator variants ("cmps 280").
// The exact uppercased key is tried first so keys with suffixed course
// numbers ("CMPS-280L") never collapse onto their embedded code; only a
// miss falls back to canonicalization.
func (s *CourseService) GetByKey(ctx context.Context, raw string) (*models.MergedCourse, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))

	s.mu.RLock()
	dataset := s.dataset
	idx, found := s.byKey[key]
	if !found {
		if canonical, ok := coursekey.Canonicalize(raw); ok && canonical != key {
			key = canonical
			idx, found = s.byKey[canonical]
		}
	}
	s.mu.RUnlock()

	if dataset == nil {
		return nil, appErrors.ErrDatasetUnavailable
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrCourseNotFound, fmt.Sprintf("course %s not found", key))
	}

	course := dataset.Courses[idx]
	return &course, nil
}

// Subjects lists the distinct subjects present in the dataset, ascending.
func (s *CourseService) Subjects(ctx context.Context) ([]string, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	subjects := []string{}
	for _, course := range dataset.Courses {
		subject := strings.ToUpper(course.Subject)
		if _, dup := seen[subject]; dup {
			continue
		}
		seen[subject] = struct{}{}
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects, nil
}

// GetBySubject returns the courses for one subject, case-insensitive. An
// unknown subject is a typed not-found, not an empty list.
func (s *CourseService) GetBySubject(ctx context.Context, subject string) ([]models.MergedCourse, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	want := strings.ToUpper(strings.TrimSpace(subject))
	matches := []models.MergedCourse{}
	for _, course := range dataset.Courses {
		if strings.ToUpper(course.Subject) == want {
			matches = append(matches, course)
		}
	}
	if len(matches) == 0 {
		return nil, appErrors.Clone(appErrors.ErrSubjectNotFound, fmt.Sprintf("subject %s not found", want))
	}
	return matches, nil
}

// CourseNumbers lists the distinct course numbers in the dataset,
// ascending. The dashboard's course selector is built from this.
func (s *CourseService) CourseNumbers(ctx context.Context) ([]string, error) {
	dataset, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	numbers := []string{}
	for _, course := range dataset.Courses {
		if _, dup := seen[course.CourseNumber]; dup {
			continue
		}
		seen[course.CourseNumber] = struct{}{}
		numbers = append(numbers, course.CourseNumber)
	}
	sort.Strings(numbers)
	return numbers, nil
}

// EnrollmentStats aggregates enrollment totals and buckets courses by
// utilization. Percentages are parsed from each course's stored string
// field with zero fallback.
func (s *CourseService) EnrollmentStats(ctx context.Context) (*dto.EnrollmentStatsResponse, bool, error) {
	cached := &dto.EnrollmentStatsResponse{}
	if s.cache.Get(ctx, cacheKeyStats, cached) {
		return cached, true, nil
	}

	dataset, err := s.snapshot()
	if err != nil {
		return nil, false, err
	}

	stats := &dto.EnrollmentStatsResponse{
		TotalCourses:      dataset.Metadata.TotalCourses,
		TotalSections:     dataset.Metadata.TotalSections,
		HighUtilization:   dto.UtilizationBucket{Courses: []string{}},
		MediumUtilization: dto.UtilizationBucket{Courses: []string{}},
		LowUtilization:    dto.UtilizationBucket{Courses: []string{}},
	}

	for _, course := range dataset.Courses {
		stats.TotalEnrollment += course.TotalActualEnrollment
		stats.TotalCapacity += course.TotalMaxEnrollment

		pct, err := strconv.ParseFloat(course.EnrollmentPercentage, 64)
		if err != nil {
			pct = 0
		}
		switch {
		case pct > 90:
			stats.HighUtilization.Courses = append(stats.HighUtilization.Courses, course.CourseKey)
		case pct >= 50:
			stats.MediumUtilization.Courses = append(stats.MediumUtilization.Courses, course.CourseKey)
		default:
			stats.LowUtilization.Courses = append(stats.LowUtilization.Courses, course.CourseKey)
		}
	}
	stats.HighUtilization.Count = len(stats.HighUtilization.Courses)
	stats.MediumUtilization.Count = len(stats.MediumUtilization.Courses)
	stats.LowUtilization.Count = len(stats.LowUtilization.Courses)
	stats.OverallUtilization = formatPercentage(stats.TotalEnrollment, stats.TotalCapacity)

	s.cache.Set(ctx, cacheKeyStats, stats)
	return stats, false, nil
}

func summarize(course models.MergedCourse) dto.CourseSummary {
	return dto.CourseSummary{
		CourseKey:             course.CourseKey,
		Subject:               course.Subject,
		CourseNumber:          course.CourseNumber,
		Name:                  course.Name,
		CreditHours:           course.CreditHours,
		TotalActualEnrollment: course.TotalActualEnrollment,
		TotalMaxEnrollment:    course.TotalMaxEnrollment,
		AvailableSeats:        course.AvailableSeats,
		ExcessEnrollment:      course.ExcessEnrollment,
		EnrollmentPercentage:  course.EnrollmentPercentage,
		SectionCount:          len(course.Sections),
	}
}
