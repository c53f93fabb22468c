package service

import (
	"go.uber.org/zap"

	"github.com/campusdash/course-api/internal/coursekey"
	"github.com/campusdash/course-api/internal/ingest"
	"github.com/campusdash/course-api/internal/models"
)

// Catalog column headers as exported by the curriculum system.
const (
	colCatalogPrefix        = "Prefix"
	colCatalogCode          = "Code"
	colCatalogName          = "Name"
	colCatalogCreditHours   = "Credit Hours:"
	colCatalogDescription   = "Description (Rendered no HTML)"
	colCatalogCourseNotes   = "Course Notes: (Rendered no HTML)"
	colCatalogPrerequisites = "Prerequisite(s): (Rendered no HTML)"
	colCatalogCorequisites  = "Corequisite(s): (Rendered no HTML)"
	colCatalogRestrictions  = "Restriction(s): (Rendered no HTML)"
	colCatalogRepeatable    = "Is Course Repeatable for Credit?"
	colCatalogCourseLevel   = "Course Level:"
	colCatalogIsActive      = "Is Active"
)

// CatalogService turns raw catalog rows into a course-key index.
type CatalogService struct {
	logger *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{logger: logger}
}

// Index builds a CourseKey -> CatalogEntry mapping. Rows without a usable
// prefix/code pair are dropped silently; a duplicate key keeps the last
// row seen and logs the collision.
func (s *CatalogService) Index(rows []ingest.Row) map[string]models.CatalogEntry {
	index := make(map[string]models.CatalogEntry, len(rows))

	for _, row := range rows {
		key, ok := coursekey.Normalize(row[colCatalogPrefix], row[colCatalogCode])
		if !ok {
			continue
		}
		if _, dup := index[key]; dup {
			s.logger.Debug("duplicate catalog row, keeping last", zap.String("course_key", key))
		}

		index[key] = models.CatalogEntry{
			Prefix:        row[colCatalogPrefix],
			Code:          row[colCatalogCode],
			Name:          row[colCatalogName],
			CreditHours:   row[colCatalogCreditHours],
			Description:   row[colCatalogDescription],
			CourseNotes:   row[colCatalogCourseNotes],
			Prerequisites: coursekey.ExtractCodes(row[colCatalogPrerequisites]),
			Corequisites:  coursekey.ExtractCodes(row[colCatalogCorequisites]),
			Restrictions:  row[colCatalogRestrictions],
			IsRepeatable:  row[colCatalogRepeatable],
			CourseLevel:   row[colCatalogCourseLevel],
			IsActive:      row[colCatalogIsActive],
		}
	}

	return index
}
