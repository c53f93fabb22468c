package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusdash/course-api/internal/ingest"
	"github.com/campusdash/course-api/internal/models"
)

type rowReader interface {
	ReadRows(path string) ([]ingest.Row, error)
}

type datasetStore interface {
	Save(dataset *models.Dataset) error
}

// PreprocessConfig names the source workbooks for a run.
type PreprocessConfig struct {
	CatalogFile   string
	OfferingsFile string
}

// PreprocessService runs the batch pipeline: read both sources, index the
// catalog, aggregate offerings, merge per course key, and persist the
// resulting dataset artifact.
type PreprocessService struct {
	reader    rowReader
	catalog   *CatalogService
	offerings *OfferingsService
	prereqs   *PrereqService
	store     datasetStore
	logger    *zap.Logger
	now       func() time.Time
	cfg       PreprocessConfig
}

// NewPreprocessService constructs the pipeline service.
func NewPreprocessService(reader rowReader, catalog *CatalogService, offerings *OfferingsService, prereqs *PrereqService, store datasetStore, logger *zap.Logger, cfg PreprocessConfig) *PreprocessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreprocessService{
		reader:    reader,
		catalog:   catalog,
		offerings: offerings,
		prereqs:   prereqs,
		store:     store,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// Run executes one full preprocessing pass and returns the dataset it
// persisted. A missing source file aborts the run; malformed rows inside
// a present source are skipped by the downstream services.
func (s *PreprocessService) Run(ctx context.Context) (*models.Dataset, error) {
	catalogRows, err := s.reader.ReadRows(s.cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	s.logger.Sugar().Infow("catalog loaded", "rows", len(catalogRows))

	offeringRows, err := s.reader.ReadRows(s.cfg.OfferingsFile)
	if err != nil {
		return nil, fmt.Errorf("read offerings: %w", err)
	}
	s.logger.Sugar().Infow("offerings loaded", "rows", len(offeringRows))

	catalog := s.catalog.Index(catalogRows)
	offerings := s.offerings.Aggregate(offeringRows)
	s.logger.Sugar().Infow("sources indexed", "catalog_courses", len(catalog), "offered_courses", len(offerings))

	dataset := s.Merge(catalog, offerings)

	if s.store != nil {
		if err := s.store.Save(dataset); err != nil {
			return nil, fmt.Errorf("persist dataset: %w", err)
		}
	}

	s.logger.Sugar().Infow("preprocessing complete",
		"run_id", dataset.Metadata.RunID,
		"courses", dataset.Metadata.TotalCourses,
		"sections", dataset.Metadata.TotalSections,
	)

	return dataset, nil
}

// Merge joins catalog and offerings per course key. Offerings are the
// authoritative set of the term's courses; a missing catalog entry yields
// empty descriptive fields, never an error. The result is sorted by
// course key ascending.
func (s *PreprocessService) Merge(catalog map[string]models.CatalogEntry, offerings map[string]models.OfferingGroup) *models.Dataset {
	courses := make([]models.MergedCourse, 0, len(offerings))
	totalSections := 0

	for key, group := range offerings {
		entry := catalog[key]

		actual, max := 0, 0
		for _, section := range group.Sections {
			actual += section.ActualEnrollment
			max += section.MaxEnrollment
		}

		name := entry.Name
		if name == "" && len(group.Sections) > 0 {
			name = group.Sections[0].CourseTitle
		}

		prereqs := entry.Prerequisites
		if prereqs == nil {
			prereqs = []string{}
		}
		coreqs := entry.Corequisites
		if coreqs == nil {
			coreqs = []string{}
		}

		available := max - actual
		excess := 0
		if available < 0 {
			excess = -available
			available = 0
		}

		courses = append(courses, models.MergedCourse{
			CourseKey:             key,
			Subject:               group.Subject,
			CourseNumber:          group.CourseNumber,
			Name:                  name,
			CreditHours:           entry.CreditHours,
			Description:           entry.Description,
			CourseNotes:           entry.CourseNotes,
			Restrictions:          entry.Restrictions,
			TotalActualEnrollment: actual,
			TotalMaxEnrollment:    max,
			AvailableSeats:        available,
			ExcessEnrollment:      excess,
			EnrollmentPercentage:  formatPercentage(actual, max),
			Prerequisites:         prereqs,
			PrerequisiteDetails:   s.prereqs.ResolveAll(prereqs, catalog),
			Corequisites:          coreqs,
			Sections:              group.Sections,
		})
		totalSections += len(group.Sections)
	}

	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CourseKey < courses[j].CourseKey
	})

	return &models.Dataset{
		Metadata: models.RunMetadata{
			RunID:         uuid.NewString(),
			GeneratedAt:   s.now().UTC().Format(time.RFC3339),
			CatalogFile:   s.cfg.CatalogFile,
			OfferingsFile: s.cfg.OfferingsFile,
			TotalCourses:  len(courses),
			TotalSections: totalSections,
		},
		Courses: courses,
	}
}

// formatPercentage renders actual/max as a two-decimal percentage string.
// A zero capacity yields "0.00" rather than a division error.
func formatPercentage(actual, max int) string {
	if max == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(actual)/float64(max)*100)
}
