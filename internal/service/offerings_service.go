package service

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/campusdash/course-api/internal/coursekey"
	"github.com/campusdash/course-api/internal/ingest"
	"github.com/campusdash/course-api/internal/models"
)

// Offerings column headers as exported by the registrar's term report.
const (
	colOfferingSubject       = "Subject"
	colOfferingCourseNumber  = "Course #"
	colOfferingCRN           = "CRN"
	colOfferingSection       = "Section #"
	colOfferingCourseTitle   = "Course Title"
	colOfferingStatus        = "Course Status"
	colOfferingInstructional = "Instructional Method"
	colOfferingScheduleType  = "Schedule Type"
	colOfferingCreditHours   = "Credit Hours"
	colOfferingActual        = "Actual Enrollment"
	colOfferingMax           = "Max Enrollment"
	colOfferingWaitlist      = "Waitlist Enrollment"
	colOfferingWaitlistCap   = "Waitlist Capacity"
	colOfferingInstructor    = "Instructor Name"
	colOfferingDay1          = "Meeting Day 1"
	colOfferingDay1Begin     = "Day 1 Begin Time"
	colOfferingDay1End       = "Day 1 End Time"
	colOfferingDay1Location  = "Day 1 Location"
	colOfferingDay2          = "Meeting Day 2"
	colOfferingDay2Begin     = "Day 2 Begin Time"
	colOfferingDay2End       = "Day 2 End Time"
	colOfferingDay2Location  = "Day 2 Location"
	colOfferingCourseNotes   = "Course Notes (SSATEXT)"
)

// OfferingsService groups section rows under their course key.
type OfferingsService struct {
	logger *zap.Logger
}

// NewOfferingsService constructs the service.
func NewOfferingsService(logger *zap.Logger) *OfferingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfferingsService{logger: logger}
}

// Aggregate builds a CourseKey -> OfferingGroup mapping. Rows missing the
// subject or course number are skipped; sections append in input order.
func (s *OfferingsService) Aggregate(rows []ingest.Row) map[string]models.OfferingGroup {
	groups := make(map[string]models.OfferingGroup)

	for _, row := range rows {
		subject := row[colOfferingSubject]
		number := row[colOfferingCourseNumber]
		key, ok := coursekey.Normalize(subject, number)
		if !ok {
			continue
		}

		section := sectionFromRow(row)

		group, exists := groups[key]
		if !exists {
			group = models.OfferingGroup{
				CourseKey:    key,
				Subject:      subject,
				CourseNumber: number,
			}
		}
		group.Sections = append(group.Sections, section)
		groups[key] = group
	}

	return groups
}

func sectionFromRow(row ingest.Row) models.Section {
	return models.Section{
		CRN:                 row[colOfferingCRN],
		Section:             row[colOfferingSection],
		CourseTitle:         row[colOfferingCourseTitle],
		Status:              row[colOfferingStatus],
		InstructionalMethod: row[colOfferingInstructional],
		ScheduleType:        row[colOfferingScheduleType],
		CreditHours:         row[colOfferingCreditHours],
		ActualEnrollment:    parseCount(row[colOfferingActual]),
		MaxEnrollment:       parseCount(row[colOfferingMax]),
		WaitlistEnrollment:  parseCount(row[colOfferingWaitlist]),
		WaitlistCapacity:    parseCount(row[colOfferingWaitlistCap]),
		Instructor:          row[colOfferingInstructor],
		Meeting1: models.Meeting{
			Day:       row[colOfferingDay1],
			BeginTime: row[colOfferingDay1Begin],
			EndTime:   row[colOfferingDay1End],
			Location:  row[colOfferingDay1Location],
		},
		Meeting2: models.Meeting{
			Day:       row[colOfferingDay2],
			BeginTime: row[colOfferingDay2Begin],
			EndTime:   row[colOfferingDay2End],
			Location:  row[colOfferingDay2Location],
		},
		CourseNotes: row[colOfferingCourseNotes],
	}
}

// parseCount coerces an enrollment cell to a non-negative int. Absent or
// malformed values fall back to zero rather than failing the run.
func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
