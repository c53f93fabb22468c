package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdash/course-api/internal/models"
	appErrors "github.com/campusdash/course-api/pkg/errors"
)

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Metadata: models.RunMetadata{
			RunID:         "run-1",
			GeneratedAt:   "2025-01-15T12:00:00Z",
			CatalogFile:   "catalog.xlsx",
			OfferingsFile: "offerings.xlsx",
			TotalCourses:  1,
			TotalSections: 1,
		},
		Courses: []models.MergedCourse{
			{
				CourseKey:             "CMPS-280",
				Subject:               "CMPS",
				CourseNumber:          "280",
				Name:                  "Algorithms",
				Prerequisites:         []string{"CMPS-161"},
				PrerequisiteDetails:   []models.PrerequisiteNode{},
				Corequisites:          []string{},
				TotalActualEnrollment: 30,
				TotalMaxEnrollment:    60,
				AvailableSeats:        30,
				EnrollmentPercentage:  "50.00",
				Sections:              []models.Section{{CRN: "20394", Section: "01"}},
			},
		},
	}
}

func TestSnapshotRoundTripIsByteStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	repo, err := NewSnapshotRepository(path, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Save(sampleDataset()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.NoError(t, repo.Save(loaded))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSnapshotLoadPreservesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	repo, err := NewSnapshotRepository(path, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Save(sampleDataset()))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleDataset(), loaded)
}

func TestSnapshotLoadMissingArtifact(t *testing.T) {
	repo, err := NewSnapshotRepository(filepath.Join(t.TempDir(), "courses.json"), nil)
	require.NoError(t, err)

	_, err = repo.Load()
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDatasetUnavailable.Code, appErrors.FromError(err).Code)
}
