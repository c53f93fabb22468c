// Package coursekey builds canonical course identifiers from the
// heterogeneous prefix/number fields found across spreadsheet sources.
package coursekey

import (
	"regexp"
	"strings"
)

// Separator joins the subject prefix and course number in a canonical key.
const Separator = "-"

// codePattern matches embedded course codes such as "CMPS-160", "CMPS 160"
// or "CMPS160". It is a best-effort heuristic, not a grammar: text like
// "score of 160 on CMPS exam" can produce false positives.
var codePattern = regexp.MustCompile(`(?i)([A-Z]{4})[ -]?([0-9]{3})`)

// Normalize folds a (prefix, number) pair into a canonical course key,
// e.g. ("cmps ", "280") -> "CMPS-280". The second return is false when
// either part is empty after trimming; callers must skip such rows.
func Normalize(prefix, number string) (string, bool) {
	prefix = strings.TrimSpace(prefix)
	number = strings.TrimSpace(number)
	if prefix == "" || number == "" {
		return "", false
	}
	return strings.ToUpper(prefix + Separator + number), true
}

// Canonicalize normalizes a raw user-supplied key ("cmps-280", "CMPS 280")
// into canonical form. Only the first embedded course code is used; any
// surrounding text, including suffixes past the three digits ("280L"),
// is discarded. Callers that must distinguish suffixed keys have to try
// an exact lookup before falling back to this. Returns false when the
// input carries no course code.
func Canonicalize(raw string) (string, bool) {
	match := codePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "", false
	}
	return Normalize(match[1], match[2])
}

// ExtractCodes scans free-form text for embedded course codes and returns
// the canonical keys, deduplicated in first-occurrence order. Blank input
// yields an empty slice.
func ExtractCodes(text string) []string {
	keys := []string{}
	if strings.TrimSpace(text) == "" {
		return keys
	}

	seen := make(map[string]struct{})
	for _, match := range codePattern.FindAllStringSubmatch(text, -1) {
		key, ok := Normalize(match[1], match[2])
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}
