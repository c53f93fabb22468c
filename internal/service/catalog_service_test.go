package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdash/course-api/internal/ingest"
)

func catalogRow(prefix, code, name string) ingest.Row {
	return ingest.Row{
		colCatalogPrefix: prefix,
		colCatalogCode:   code,
		colCatalogName:   name,
	}
}

func TestCatalogIndexKeysByNormalizedCourseKey(t *testing.T) {
	svc := NewCatalogService(nil)
	index := svc.Index([]ingest.Row{catalogRow("cmps", "280", "Algorithms")})

	entry, ok := index["CMPS-280"]
	require.True(t, ok)
	assert.Equal(t, "Algorithms", entry.Name)
}

func TestCatalogIndexSkipsRowsWithoutKeyFields(t *testing.T) {
	svc := NewCatalogService(nil)
	index := svc.Index([]ingest.Row{
		catalogRow("", "280", "No prefix"),
		catalogRow("CMPS", "  ", "No code"),
		catalogRow("CMPS", "161", "Kept"),
	})

	assert.Len(t, index, 1)
	assert.Equal(t, "Kept", index["CMPS-161"].Name)
}

func TestCatalogIndexLastRowWinsOnDuplicateKey(t *testing.T) {
	svc := NewCatalogService(nil)
	index := svc.Index([]ingest.Row{
		catalogRow("CMPS", "280", "First"),
		catalogRow("CMPS", "280", "Second"),
	})

	require.Len(t, index, 1)
	assert.Equal(t, "Second", index["CMPS-280"].Name)
}

func TestCatalogIndexExtractsRequisites(t *testing.T) {
	row := catalogRow("CMPS", "280", "Algorithms")
	row[colCatalogPrerequisites] = "CMPS-161 and MATH 200 or CMPS161"
	row[colCatalogCorequisites] = "CMPS-283"

	svc := NewCatalogService(nil)
	index := svc.Index([]ingest.Row{row})

	entry := index["CMPS-280"]
	assert.Equal(t, []string{"CMPS-161", "MATH-200"}, entry.Prerequisites)
	assert.Equal(t, []string{"CMPS-283"}, entry.Corequisites)
}
