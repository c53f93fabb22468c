// Command artifact_diff compares two dataset artifacts and reports
// per-course differences. Metadata differences (run ID, timestamps) are
// informational; course-level differences are breaking and fail the run.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"reflect"

	"github.com/campusdash/course-api/internal/models"
)

type diff struct {
	CourseKey string
	Kind      string
	Fields    []string
}

func main() {
	var (
		beforePath string
		afterPath  string
	)

	flag.StringVar(&beforePath, "before", "", "Path to the baseline artifact")
	flag.StringVar(&afterPath, "after", "", "Path to the candidate artifact")
	flag.Parse()

	if beforePath == "" || afterPath == "" {
		log.Fatal("both -before and -after are required")
	}

	before, err := loadArtifact(beforePath)
	if err != nil {
		log.Fatalf("failed to load baseline: %v", err)
	}
	after, err := loadArtifact(afterPath)
	if err != nil {
		log.Fatalf("failed to load candidate: %v", err)
	}

	diffs := compare(before, after)
	printReport(before, after, diffs)

	if len(diffs) > 0 {
		os.Exit(1)
	}
}

func loadArtifact(path string) (*models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dataset := &models.Dataset{}
	if err := json.Unmarshal(data, dataset); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return dataset, nil
}

func compare(before, after *models.Dataset) []diff {
	beforeByKey := make(map[string]models.MergedCourse, len(before.Courses))
	for _, course := range before.Courses {
		beforeByKey[course.CourseKey] = course
	}

	var diffs []diff
	seen := make(map[string]struct{}, len(after.Courses))
	for _, course := range after.Courses {
		seen[course.CourseKey] = struct{}{}
		base, ok := beforeByKey[course.CourseKey]
		if !ok {
			diffs = append(diffs, diff{CourseKey: course.CourseKey, Kind: "added"})
			continue
		}
		if fields := changedFields(base, course); len(fields) > 0 {
			diffs = append(diffs, diff{CourseKey: course.CourseKey, Kind: "changed", Fields: fields})
		}
	}
	for _, course := range before.Courses {
		if _, ok := seen[course.CourseKey]; !ok {
			diffs = append(diffs, diff{CourseKey: course.CourseKey, Kind: "removed"})
		}
	}
	return diffs
}

func changedFields(a, b models.MergedCourse) []string {
	var fields []string
	if a.Name != b.Name {
		fields = append(fields, "name")
	}
	if a.CreditHours != b.CreditHours {
		fields = append(fields, "creditHours")
	}
	if a.Description != b.Description {
		fields = append(fields, "description")
	}
	if a.TotalActualEnrollment != b.TotalActualEnrollment ||
		a.TotalMaxEnrollment != b.TotalMaxEnrollment ||
		a.EnrollmentPercentage != b.EnrollmentPercentage {
		fields = append(fields, "enrollment")
	}
	if a.AvailableSeats != b.AvailableSeats || a.ExcessEnrollment != b.ExcessEnrollment {
		fields = append(fields, "seats")
	}
	if !reflect.DeepEqual(a.Prerequisites, b.Prerequisites) ||
		!reflect.DeepEqual(a.Corequisites, b.Corequisites) {
		fields = append(fields, "requisites")
	}
	if !reflect.DeepEqual(a.PrerequisiteDetails, b.PrerequisiteDetails) {
		fields = append(fields, "prerequisiteDetails")
	}
	if len(a.Sections) != len(b.Sections) {
		fields = append(fields, "sections")
	} else if !reflect.DeepEqual(a.Sections, b.Sections) {
		fields = append(fields, "sections")
	}
	return fields
}

func printReport(before, after *models.Dataset, diffs []diff) {
	fmt.Println("Artifact Diff Report")
	fmt.Println("====================")
	fmt.Printf("Baseline:  run %s, generated %s, %d courses\n",
		before.Metadata.RunID, before.Metadata.GeneratedAt, before.Metadata.TotalCourses)
	fmt.Printf("Candidate: run %s, generated %s, %d courses\n",
		after.Metadata.RunID, after.Metadata.GeneratedAt, after.Metadata.TotalCourses)

	for _, d := range diffs {
		switch d.Kind {
		case "changed":
			fmt.Printf("[DIFF] %s changed: %v\n", d.CourseKey, d.Fields)
		default:
			fmt.Printf("[DIFF] %s %s\n", d.CourseKey, d.Kind)
		}
	}
	fmt.Printf("Course diffs: %d\n", len(diffs))
}
