package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/temirov/memdoc/internal/audit"
)

const (
	markdownTitleConstant              = "# Memory Audit Report"
	markdownScoreTemplateConstant      = "Score: **%d/100**"
	markdownDuplicatesHeadingConstant  = "## Duplicates"
	markdownStaleHeadingConstant       = "## Stale candidates"
	markdownHintsHeadingConstant       = "## Contradiction hints"
	markdownRemediationHeading         = "## Remediation"
	markdownEmptySectionItemConstant   = "- none"
	markdownDuplicateItemTemplate      = "- %s... (%s vs %s)"
	markdownStaleItemTemplate          = "- %s:%d — %s"
	markdownHintItemTemplate           = "- %s: %s"
	markdownListItemTemplateConstant   = "- %s"
	markdownLineSeparatorConstant      = "\n"
	duplicateTextPreviewLengthConstant = 80
	jsonIndentConstant                 = "  "
	reportFilePermissionsConstant      = 0o644
	jsonEncodeErrorTemplateConstant    = "unable to encode JSON report: %w"
	reportWriteErrorTemplateConstant   = "unable to write %s: %w"
)

type jsonWeights struct {
	Duplicate     int `json:"duplicate"`
	Stale         int `json:"stale"`
	Contradiction int `json:"contradiction"`
}

type jsonDuplicate struct {
	Line   string `json:"line"`
	First  string `json:"first"`
	Second string `json:"second"`
}

type jsonStaleCandidate struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

type jsonContradictionHint struct {
	File string `json:"file"`
	Hint string `json:"hint"`
}

type jsonReport struct {
	GeneratedAt        string                  `json:"generated_at"`
	Files              []string                `json:"files"`
	Score              int                     `json:"score"`
	Threshold          int                     `json:"threshold"`
	Weights            jsonWeights             `json:"weights"`
	Duplicates         []jsonDuplicate         `json:"duplicates"`
	StaleCandidates    []jsonStaleCandidate    `json:"stale_candidates"`
	ContradictionHints []jsonContradictionHint `json:"contradiction_hints"`
	Remediation        []string                `json:"remediation"`
	Outcome            string                  `json:"outcome"`
}

// RenderJSON serializes the audit result into the indented JSON report format.
func RenderJSON(result audit.AuditResult) ([]byte, error) {
	duplicates := make([]jsonDuplicate, 0, len(result.Duplicates))
	for _, duplicate := range result.Duplicates {
		duplicates = append(duplicates, jsonDuplicate{
			Line:   duplicate.NormalizedText,
			First:  duplicate.First.String(),
			Second: duplicate.Second.String(),
		})
	}

	staleCandidates := make([]jsonStaleCandidate, 0, len(result.StaleCandidates))
	for _, staleCandidate := range result.StaleCandidates {
		staleCandidates = append(staleCandidates, jsonStaleCandidate{
			File: staleCandidate.Document,
			Line: staleCandidate.Line,
			Text: staleCandidate.Text,
		})
	}

	contradictionHints := make([]jsonContradictionHint, 0, len(result.ContradictionHints))
	for _, contradictionHint := range result.ContradictionHints {
		contradictionHints = append(contradictionHints, jsonContradictionHint{
			File: contradictionHint.Document,
			Hint: contradictionHint.Hint,
		})
	}

	files := make([]string, 0, len(result.Documents))
	files = append(files, result.Documents...)

	remediation := make([]string, 0, len(result.Remediation))
	remediation = append(remediation, result.Remediation...)

	weights := jsonWeights{
		Duplicate:     result.Weights.Duplicate,
		Stale:         result.Weights.Stale,
		Contradiction: result.Weights.Contradiction,
	}

	document := jsonReport{
		GeneratedAt:        result.GeneratedAt.Format(time.RFC3339),
		Files:              files,
		Score:              result.Score,
		Threshold:          result.Threshold,
		Weights:            weights,
		Duplicates:         duplicates,
		StaleCandidates:    staleCandidates,
		ContradictionHints: contradictionHints,
		Remediation:        remediation,
		Outcome:            string(result.Outcome),
	}

	encoded, encodeError := json.MarshalIndent(document, "", jsonIndentConstant)
	if encodeError != nil {
		return nil, fmt.Errorf(jsonEncodeErrorTemplateConstant, encodeError)
	}
	return encoded, nil
}

// RenderMarkdown produces the human-readable report for the audit result.
func RenderMarkdown(result audit.AuditResult) string {
	lines := []string{
		markdownTitleConstant,
		"",
		fmt.Sprintf(markdownScoreTemplateConstant, result.Score),
		"",
		markdownDuplicatesHeadingConstant,
	}
	lines = append(lines, duplicateSectionItems(result.Duplicates)...)
	lines = append(lines, "", markdownStaleHeadingConstant)
	lines = append(lines, staleSectionItems(result.StaleCandidates)...)
	lines = append(lines, "", markdownHintsHeadingConstant)
	lines = append(lines, hintSectionItems(result.ContradictionHints)...)
	lines = append(lines, "", markdownRemediationHeading)
	lines = append(lines, remediationSectionItems(result.Remediation)...)

	return strings.Join(lines, markdownLineSeparatorConstant) + markdownLineSeparatorConstant
}

func duplicateSectionItems(duplicates []audit.DuplicateFinding) []string {
	if len(duplicates) == 0 {
		return []string{markdownEmptySectionItemConstant}
	}
	items := make([]string, 0, len(duplicates))
	for _, duplicate := range duplicates {
		items = append(items, fmt.Sprintf(
			markdownDuplicateItemTemplate,
			truncateText(duplicate.NormalizedText, duplicateTextPreviewLengthConstant),
			duplicate.First.String(),
			duplicate.Second.String(),
		))
	}
	return items
}

func staleSectionItems(staleCandidates []audit.StaleFinding) []string {
	if len(staleCandidates) == 0 {
		return []string{markdownEmptySectionItemConstant}
	}
	items := make([]string, 0, len(staleCandidates))
	for _, staleCandidate := range staleCandidates {
		items = append(items, fmt.Sprintf(markdownStaleItemTemplate, staleCandidate.Document, staleCandidate.Line, staleCandidate.Text))
	}
	return items
}

func hintSectionItems(contradictionHints []audit.ContradictionHint) []string {
	if len(contradictionHints) == 0 {
		return []string{markdownEmptySectionItemConstant}
	}
	items := make([]string, 0, len(contradictionHints))
	for _, contradictionHint := range contradictionHints {
		items = append(items, fmt.Sprintf(markdownHintItemTemplate, contradictionHint.Document, contradictionHint.Hint))
	}
	return items
}

func remediationSectionItems(remediation []string) []string {
	if len(remediation) == 0 {
		return []string{markdownEmptySectionItemConstant}
	}
	items := make([]string, 0, len(remediation))
	for _, advisory := range remediation {
		items = append(items, fmt.Sprintf(markdownListItemTemplateConstant, advisory))
	}
	return items
}

func truncateText(text string, maximumLength int) string {
	runes := []rune(text)
	if len(runes) <= maximumLength {
		return string(runes)
	}
	return string(runes[:maximumLength])
}

// FilesystemWriter persists rendered reports to local files.
type FilesystemWriter struct{}

// NewFilesystemWriter constructs a report writer backed by the local filesystem.
func NewFilesystemWriter() *FilesystemWriter {
	return &FilesystemWriter{}
}

// WriteReports renders and writes the Markdown and JSON reports. Empty paths
// skip the corresponding report.
func (writer *FilesystemWriter) WriteReports(result audit.AuditResult, markdownPath string, jsonPath string) error {
	if len(markdownPath) > 0 {
		markdownContent := RenderMarkdown(result)
		if writeError := os.WriteFile(markdownPath, []byte(markdownContent), reportFilePermissionsConstant); writeError != nil {
			return fmt.Errorf(reportWriteErrorTemplateConstant, markdownPath, writeError)
		}
	}

	if len(jsonPath) > 0 {
		jsonContent, renderError := RenderJSON(result)
		if renderError != nil {
			return renderError
		}
		if writeError := os.WriteFile(jsonPath, jsonContent, reportFilePermissionsConstant); writeError != nil {
			return fmt.Errorf(reportWriteErrorTemplateConstant, jsonPath, writeError)
		}
	}

	return nil
}
