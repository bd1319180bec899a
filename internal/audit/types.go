package audit

import (
	"fmt"
	"time"
)

// AuditOutcome classifies how an audit run concluded.
type AuditOutcome string

// Supported audit outcomes.
const (
	AuditOutcomeOK         AuditOutcome = "ok"
	AuditOutcomeStrictFail AuditOutcome = "strict_fail"
)

// Document pairs a corpus identifier with its raw text content.
type Document struct {
	Identifier string
	Content    string
}

// Location identifies a single line within a scanned document.
type Location struct {
	Document string
	Line     int
}

// String renders the location in the document:line form used by reports.
func (location Location) String() string {
	return fmt.Sprintf("%s:%d", location.Document, location.Line)
}

// DuplicateFinding records a normalized line seen at two locations.
type DuplicateFinding struct {
	NormalizedText string
	First          Location
	Second         Location
}

// StaleFinding records a line carrying an unresolved marker keyword.
type StaleFinding struct {
	Document string
	Line     int
	Text     string
}

// ContradictionHint flags a document holding both absolute-affirmative and absolute-negative statements.
type ContradictionHint struct {
	Document string
	Hint     string
}

// Weights holds the per-category score deductions applied by the scorer.
type Weights struct {
	Duplicate     int
	Stale         int
	Contradiction int
}

// DefaultWeights returns the baseline deduction weights.
func DefaultWeights() Weights {
	return Weights{
		Duplicate:     2,
		Stale:         1,
		Contradiction: 5,
	}
}

// ScanFindings aggregates the three findings collections produced by one corpus scan.
type ScanFindings struct {
	Duplicates         []DuplicateFinding
	StaleCandidates    []StaleFinding
	ContradictionHints []ContradictionHint
}

// AuditResult is the single record an audit run hands back to its caller.
type AuditResult struct {
	GeneratedAt        time.Time
	Documents          []string
	Score              int
	Threshold          int
	Weights            Weights
	Duplicates         []DuplicateFinding
	StaleCandidates    []StaleFinding
	ContradictionHints []ContradictionHint
	Remediation        []string
	Outcome            AuditOutcome
}

// CommandOptions captures the resolved parameters for one audit run.
type CommandOptions struct {
	RootDirectory     string
	IncludeMemoryFile bool
	IgnorePatterns    []string
	Weights           Weights
	Threshold         int
	Strict            bool
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
