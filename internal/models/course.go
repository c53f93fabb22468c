package models

// CatalogEntry holds the descriptive metadata for one catalog course.
// Entries are immutable once built by the catalog indexer.
type CatalogEntry struct {
	Prefix        string   `json:"prefix"`
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	CreditHours   string   `json:"creditHours"`
	Description   string   `json:"description"`
	CourseNotes   string   `json:"courseNotes"`
	Prerequisites []string `json:"prerequisites"`
	Corequisites  []string `json:"corequisites"`
	Restrictions  string   `json:"restrictions"`
	IsRepeatable  string   `json:"isRepeatable"`
	CourseLevel   string   `json:"courseLevel"`
	IsActive      string   `json:"isActive"`
}

// Meeting is one scheduled day/time/location tuple of a section.
type Meeting struct {
	Day       string `json:"day"`
	BeginTime string `json:"beginTime"`
	EndTime   string `json:"endTime"`
	Location  string `json:"location"`
}

// Section is one scheduled meeting-and-enrollment unit of a course.
// Enrollment counts default to zero when the source cell is absent or
// malformed.
type Section struct {
	CRN                 string  `json:"crn"`
	Section             string  `json:"section"`
	CourseTitle         string  `json:"courseTitle"`
	Status              string  `json:"status"`
	InstructionalMethod string  `json:"instructionalMethod"`
	ScheduleType        string  `json:"scheduleType"`
	CreditHours         string  `json:"creditHours"`
	ActualEnrollment    int     `json:"actualEnrollment"`
	MaxEnrollment       int     `json:"maxEnrollment"`
	WaitlistEnrollment  int     `json:"waitlistEnrollment"`
	WaitlistCapacity    int     `json:"waitlistCapacity"`
	Instructor          string  `json:"instructor"`
	Meeting1            Meeting `json:"meeting1"`
	Meeting2            Meeting `json:"meeting2"`
	CourseNotes         string  `json:"courseNotes"`
}

// OfferingGroup collects all sections offered under one course key in a
// term. Section order follows input row order.
type OfferingGroup struct {
	CourseKey    string    `json:"courseKey"`
	Subject      string    `json:"subject"`
	CourseNumber string    `json:"courseNumber"`
	Sections     []Section `json:"sections"`
}

// PrerequisiteNode is a resolved node of a prerequisite tree. A key never
// repeats along a single root-to-leaf path; siblings may share one.
type PrerequisiteNode struct {
	CourseKey     string             `json:"courseKey"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	CreditHours   string             `json:"creditHours,omitempty"`
	Prerequisites []PrerequisiteNode `json:"prerequisites"`
}

// MergedCourse is the final joined record served by the query API.
type MergedCourse struct {
	CourseKey    string `json:"courseKey"`
	Subject      string `json:"subject"`
	CourseNumber string `json:"courseNumber"`
	Name         string `json:"name"`
	CreditHours  string `json:"creditHours"`
	Description  string `json:"description"`
	CourseNotes  string `json:"courseNotes"`
	Restrictions string `json:"restrictions"`

	TotalActualEnrollment int `json:"totalActualEnrollment"`
	TotalMaxEnrollment    int `json:"totalMaxEnrollment"`
	// AvailableSeats is floored at zero; over-enrollment surfaces in
	// ExcessEnrollment instead of a negative seat count.
	AvailableSeats       int    `json:"availableSeats"`
	ExcessEnrollment     int    `json:"excessEnrollment"`
	EnrollmentPercentage string `json:"enrollmentPercentage"`

	Prerequisites       []string           `json:"prerequisites"`
	PrerequisiteDetails []PrerequisiteNode `json:"prerequisiteDetails"`
	Corequisites        []string           `json:"corequisites"`

	Sections []Section `json:"sections"`
}

// RunMetadata describes one preprocessing run.
type RunMetadata struct {
	RunID         string `json:"runId"`
	GeneratedAt   string `json:"generatedAt"`
	CatalogFile   string `json:"catalogFile"`
	OfferingsFile string `json:"offeringsFile"`
	TotalCourses  int    `json:"totalCourses"`
	TotalSections int    `json:"totalSections"`
}

// Dataset is the persisted output artifact: run metadata plus the merged
// course list sorted by course key ascending.
type Dataset struct {
	Metadata RunMetadata    `json:"metadata"`
	Courses  []MergedCourse `json:"courses"`
}
