package audit

import (
	"strings"
	"unicode/utf8"
)

const (
	minimumStatementLengthConstant   = 15
	absoluteAffirmativeTokenConstant = "always"
	absoluteNegativeTokenConstant    = "never"
	contradictionHintMessageConstant = "contains both 'always' and 'never' statements"
	lineSeparatorConstant            = "\n"
)

// staleMarkerKeywords are matched as substrings of the normalized line.
var staleMarkerKeywords = []string{"todo", "later", "tbd", "fixme"}

// ScanDocuments walks the corpus in collector order and produces the three
// findings collections. Duplicate attribution is global: every repeat of a
// normalized line references the location where that line first appeared,
// across all documents, so results are byte-for-byte reproducible for a
// given input order.
func ScanDocuments(documents []Document) ScanFindings {
	findings := ScanFindings{}
	firstSeenLocations := map[string]Location{}

	for _, document := range documents {
		for lineNumber, rawLine := range splitDocumentLines(document.Content) {
			normalizedLine := NormalizeLine(rawLine)
			if !qualifiesAsStatement(normalizedLine) {
				continue
			}

			currentLocation := Location{Document: document.Identifier, Line: lineNumber + 1}
			if firstLocation, alreadySeen := firstSeenLocations[normalizedLine]; alreadySeen {
				findings.Duplicates = append(findings.Duplicates, DuplicateFinding{
					NormalizedText: normalizedLine,
					First:          firstLocation,
					Second:         currentLocation,
				})
			} else {
				firstSeenLocations[normalizedLine] = currentLocation
			}

			if containsStaleMarker(normalizedLine) {
				findings.StaleCandidates = append(findings.StaleCandidates, StaleFinding{
					Document: document.Identifier,
					Line:     lineNumber + 1,
					Text:     strings.TrimSpace(rawLine),
				})
			}
		}
	}

	for _, document := range documents {
		if hint, found := detectContradiction(document); found {
			findings.ContradictionHints = append(findings.ContradictionHints, hint)
		}
	}

	return findings
}

func splitDocumentLines(content string) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(content, lineSeparatorConstant)
}

// qualifiesAsStatement applies the minimum-length floor in characters, not
// bytes, so multibyte text is measured the same as ASCII.
func qualifiesAsStatement(normalizedLine string) bool {
	return utf8.RuneCountInString(normalizedLine) >= minimumStatementLengthConstant
}

func containsStaleMarker(normalizedLine string) bool {
	for _, markerKeyword := range staleMarkerKeywords {
		if strings.Contains(normalizedLine, markerKeyword) {
			return true
		}
	}
	return false
}

// detectContradiction flags a document whose qualifying lines assert both an
// absolute-affirmative and an absolute-negative claim. The two tokens need
// not share a line.
func detectContradiction(document Document) (ContradictionHint, bool) {
	containsAffirmative := false
	containsNegative := false

	for _, rawLine := range splitDocumentLines(document.Content) {
		normalizedLine := NormalizeLine(rawLine)
		if !qualifiesAsStatement(normalizedLine) {
			continue
		}
		if strings.Contains(normalizedLine, absoluteAffirmativeTokenConstant) {
			containsAffirmative = true
		}
		if strings.Contains(normalizedLine, absoluteNegativeTokenConstant) {
			containsNegative = true
		}
	}

	if containsAffirmative && containsNegative {
		return ContradictionHint{
			Document: document.Identifier,
			Hint:     contradictionHintMessageConstant,
		}, true
	}
	return ContradictionHint{}, false
}
