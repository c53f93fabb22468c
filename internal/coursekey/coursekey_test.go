package coursekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	key, ok := Normalize("cmps", "280")
	require.True(t, ok)
	assert.Equal(t, "CMPS-280", key)
}

func TestNormalizeTrimsAndFoldsCase(t *testing.T) {
	a, okA := Normalize("  CmPs ", " 280 ")
	b, okB := Normalize("CMPS", "280")
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, b, a)
}

func TestNormalizeIdempotent(t *testing.T) {
	key, ok := Normalize("cmps", "280")
	require.True(t, ok)
	again, ok := Canonicalize(key)
	require.True(t, ok)
	assert.Equal(t, key, again)
}

func TestNormalizeRejectsEmptyParts(t *testing.T) {
	_, ok := Normalize("", "280")
	assert.False(t, ok)
	_, ok = Normalize("CMPS", "  ")
	assert.False(t, ok)
}

func TestCanonicalizeVariants(t *testing.T) {
	for _, raw := range []string{"CMPS-280", "cmps 280", "CmPs280", " cmps-280 "} {
		key, ok := Canonicalize(raw)
		require.True(t, ok, "raw %q", raw)
		assert.Equal(t, "CMPS-280", key)
	}
}

func TestCanonicalizeRejectsNonCodes(t *testing.T) {
	_, ok := Canonicalize("not a course")
	assert.False(t, ok)
}

func TestExtractCodesDeduplicatesAndNormalizes(t *testing.T) {
	keys := ExtractCodes("CMPS-160, CMPS 161, and CMPS161")
	assert.Equal(t, []string{"CMPS-160", "CMPS-161"}, keys)
}

func TestExtractCodesEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractCodes(""))
	assert.Empty(t, ExtractCodes("   "))
}

func TestExtractCodesPreservesFirstOccurrenceOrder(t *testing.T) {
	keys := ExtractCodes("MATH-200 before CMPS-161, then MATH 200 again")
	assert.Equal(t, []string{"MATH-200", "CMPS-161"}, keys)
}

func TestExtractCodesLowercaseText(t *testing.T) {
	keys := ExtractCodes("requires cmps 161 with a grade of C")
	assert.Equal(t, []string{"CMPS-161"}, keys)
}
