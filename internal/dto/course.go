package dto

import "github.com/campusdash/course-api/internal/models"

// CourseSummary is the listing view of a merged course. It omits the
// resolved prerequisite trees and per-section detail.
type CourseSummary struct {
	CourseKey             string `json:"courseKey"`
	Subject               string `json:"subject"`
	CourseNumber          string `json:"courseNumber"`
	Name                  string `json:"name"`
	CreditHours           string `json:"creditHours"`
	TotalActualEnrollment int    `json:"totalActualEnrollment"`
	TotalMaxEnrollment    int    `json:"totalMaxEnrollment"`
	AvailableSeats        int    `json:"availableSeats"`
	ExcessEnrollment      int    `json:"excessEnrollment"`
	EnrollmentPercentage  string `json:"enrollmentPercentage"`
	SectionCount          int    `json:"sectionCount"`
}

// CourseListResponse bundles run metadata with course summaries.
type CourseListResponse struct {
	Metadata models.RunMetadata `json:"metadata"`
	Courses  []CourseSummary    `json:"courses"`
}

// UtilizationBucket groups course keys falling into one utilization band.
type UtilizationBucket struct {
	Count   int      `json:"count"`
	Courses []string `json:"courses"`
}

// EnrollmentStatsResponse aggregates enrollment across the dataset and
// buckets courses by utilization: high >90%, medium 50-90%, low <50%.
type EnrollmentStatsResponse struct {
	TotalCourses       int               `json:"totalCourses"`
	TotalSections      int               `json:"totalSections"`
	TotalEnrollment    int               `json:"totalEnrollment"`
	TotalCapacity      int               `json:"totalCapacity"`
	OverallUtilization string            `json:"overallUtilization"`
	HighUtilization    UtilizationBucket `json:"highUtilization"`
	MediumUtilization  UtilizationBucket `json:"mediumUtilization"`
	LowUtilization     UtilizationBucket `json:"lowUtilization"`
}

// SubjectListResponse lists the distinct subjects in the dataset.
type SubjectListResponse struct {
	Subjects []string `json:"subjects"`
}

// RefreshResponse acknowledges an accepted dataset refresh.
type RefreshResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// ExportRequest carries the requested report format.
type ExportRequest struct {
	Format string `validate:"required,oneof=csv pdf"`
}
