package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdash/course-api/internal/ingest"
)

func offeringRow(subject, number, crn, actual string) ingest.Row {
	return ingest.Row{
		colOfferingSubject:      subject,
		colOfferingCourseNumber: number,
		colOfferingCRN:          crn,
		colOfferingActual:       actual,
	}
}

func TestAggregateGroupsSectionsUnderOneKey(t *testing.T) {
	svc := NewOfferingsService(nil)
	groups := svc.Aggregate([]ingest.Row{
		offeringRow("CMPS", "280", "10001", "32"),
		offeringRow("CMPS", "280", "10002", "35"),
		offeringRow("CMPS", "161", "10003", "20"),
	})

	require.Len(t, groups, 2)
	group := groups["CMPS-280"]
	require.Len(t, group.Sections, 2)
	assert.Equal(t, "CMPS", group.Subject)
	assert.Equal(t, "280", group.CourseNumber)
	// input row order is preserved
	assert.Equal(t, "10001", group.Sections[0].CRN)
	assert.Equal(t, "10002", group.Sections[1].CRN)
}

func TestAggregateSkipsRowsMissingKeyFields(t *testing.T) {
	svc := NewOfferingsService(nil)
	groups := svc.Aggregate([]ingest.Row{
		offeringRow("", "280", "10001", "32"),
		offeringRow("CMPS", "", "10002", "35"),
	})

	assert.Empty(t, groups)
}

func TestAggregateCoercesEnrollmentCounts(t *testing.T) {
	row := offeringRow("CMPS", "280", "10001", "not-a-number")
	row[colOfferingMax] = ""
	row[colOfferingWaitlist] = "-3"
	row[colOfferingWaitlistCap] = " 5 "

	svc := NewOfferingsService(nil)
	groups := svc.Aggregate([]ingest.Row{row})

	section := groups["CMPS-280"].Sections[0]
	assert.Equal(t, 0, section.ActualEnrollment)
	assert.Equal(t, 0, section.MaxEnrollment)
	assert.Equal(t, 0, section.WaitlistEnrollment)
	assert.Equal(t, 5, section.WaitlistCapacity)
}

func TestAggregateCapturesMeetingTuples(t *testing.T) {
	row := offeringRow("CMPS", "280", "10001", "30")
	row[colOfferingDay1] = "MW"
	row[colOfferingDay1Begin] = "0900"
	row[colOfferingDay1End] = "1015"
	row[colOfferingDay1Location] = "FAYARD 226"
	row[colOfferingDay2] = "F"

	svc := NewOfferingsService(nil)
	section := svc.Aggregate([]ingest.Row{row})["CMPS-280"].Sections[0]

	assert.Equal(t, "MW", section.Meeting1.Day)
	assert.Equal(t, "0900", section.Meeting1.BeginTime)
	assert.Equal(t, "FAYARD 226", section.Meeting1.Location)
	assert.Equal(t, "F", section.Meeting2.Day)
	assert.Equal(t, "", section.Meeting2.Location)
}
