package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdash/course-api/internal/models"
	appErrors "github.com/campusdash/course-api/pkg/errors"
)

func testDataset() *models.Dataset {
	return &models.Dataset{
		Metadata: models.RunMetadata{
			RunID:         "run-1",
			GeneratedAt:   "2025-01-15T12:00:00Z",
			TotalCourses:  3,
			TotalSections: 4,
		},
		Courses: []models.MergedCourse{
			{
				CourseKey: "CMPS-161", Subject: "CMPS", CourseNumber: "161", Name: "Programming II",
				TotalActualEnrollment: 95, TotalMaxEnrollment: 100, EnrollmentPercentage: "95.00",
				Sections: []models.Section{{}, {}},
			},
			{
				CourseKey: "CMPS-280", Subject: "CMPS", CourseNumber: "280", Name: "Algorithms",
				TotalActualEnrollment: 30, TotalMaxEnrollment: 60, EnrollmentPercentage: "50.00",
				Sections: []models.Section{{}},
			},
			{
				CourseKey: "MATH-200", Subject: "MATH", CourseNumber: "200", Name: "Calculus I",
				TotalActualEnrollment: 10, TotalMaxEnrollment: 40, EnrollmentPercentage: "25.00",
				Sections: []models.Section{{}},
			},
		},
	}
}

func newCourseService(t *testing.T) *CourseService {
	t.Helper()
	return NewCourseService(testDataset(), nil, nil)
}

func TestListReturnsSummariesWithoutSectionDetail(t *testing.T) {
	svc := newCourseService(t)

	list, cacheHit, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, "run-1", list.Metadata.RunID)
	require.Len(t, list.Courses, 3)
	assert.Equal(t, 2, list.Courses[0].SectionCount)
	assert.Equal(t, "CMPS-161", list.Courses[0].CourseKey)
}

func TestGetByKeyIsCaseInsensitive(t *testing.T) {
	svc := newCourseService(t)

	for _, raw := range []string{"CMPS-280", "cmps-280", "cmps 280", "CmPs280"} {
		course, err := svc.GetByKey(context.Background(), raw)
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, "Algorithms", course.Name)
	}
}

func TestGetByKeyPrefersExactKeyOverEmbeddedCode(t *testing.T) {
	svc := NewCourseService(&models.Dataset{
		Metadata: models.RunMetadata{RunID: "run-1", TotalCourses: 2},
		Courses: []models.MergedCourse{
			{CourseKey: "CMPS-280", Subject: "CMPS", CourseNumber: "280", Name: "Algorithms"},
			{CourseKey: "CMPS-280L", Subject: "CMPS", CourseNumber: "280L", Name: "Algorithms Lab"},
		},
	}, nil, nil)

	lab, err := svc.GetByKey(context.Background(), "CMPS-280L")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms Lab", lab.Name)

	lab, err = svc.GetByKey(context.Background(), "cmps-280l")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms Lab", lab.Name)

	lecture, err := svc.GetByKey(context.Background(), "CMPS-280")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", lecture.Name)
}

func TestGetByKeyNotFound(t *testing.T) {
	svc := newCourseService(t)

	_, err := svc.GetByKey(context.Background(), "CMPS-999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCourseNotFound.Code, appErrors.FromError(err).Code)
}

func TestGetByKeyWithoutDataset(t *testing.T) {
	svc := NewCourseService(nil, nil, nil)

	_, err := svc.GetByKey(context.Background(), "CMPS-280")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDatasetUnavailable.Code, appErrors.FromError(err).Code)
}

func TestSubjectsAreDistinctAndSorted(t *testing.T) {
	svc := newCourseService(t)

	subjects, err := svc.Subjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CMPS", "MATH"}, subjects)
}

func TestGetBySubjectCaseInsensitive(t *testing.T) {
	svc := newCourseService(t)

	courses, err := svc.GetBySubject(context.Background(), "cmps")
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestGetBySubjectNotFound(t *testing.T) {
	svc := newCourseService(t)

	_, err := svc.GetBySubject(context.Background(), "BIOL")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSubjectNotFound.Code, appErrors.FromError(err).Code)
}

func TestCourseNumbersDistinctSorted(t *testing.T) {
	svc := newCourseService(t)

	numbers, err := svc.CourseNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"161", "200", "280"}, numbers)
}

func TestEnrollmentStatsBucketsByUtilization(t *testing.T) {
	svc := newCourseService(t)

	stats, cacheHit, err := svc.EnrollmentStats(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	assert.Equal(t, 3, stats.TotalCourses)
	assert.Equal(t, 4, stats.TotalSections)
	assert.Equal(t, 135, stats.TotalEnrollment)
	assert.Equal(t, 200, stats.TotalCapacity)
	assert.Equal(t, "67.50", stats.OverallUtilization)

	assert.Equal(t, []string{"CMPS-161"}, stats.HighUtilization.Courses)
	assert.Equal(t, []string{"CMPS-280"}, stats.MediumUtilization.Courses)
	assert.Equal(t, []string{"MATH-200"}, stats.LowUtilization.Courses)
	assert.Equal(t, 1, stats.HighUtilization.Count)
}

func TestReloadSwapsSnapshot(t *testing.T) {
	svc := newCourseService(t)

	svc.Reload(context.Background(), &models.Dataset{
		Metadata: models.RunMetadata{RunID: "run-2", TotalCourses: 1},
		Courses: []models.MergedCourse{
			{CourseKey: "BIOL-101", Subject: "BIOL", CourseNumber: "101"},
		},
	})

	_, err := svc.GetByKey(context.Background(), "CMPS-280")
	require.Error(t, err)

	course, err := svc.GetByKey(context.Background(), "BIOL-101")
	require.NoError(t, err)
	assert.Equal(t, "BIOL", course.Subject)
}
