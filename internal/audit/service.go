package audit

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	documentSourceErrorTemplateConstant = "unable to collect documents: %w"
	runCompletedMessageConstant         = "memory audit completed"
	runStartedMessageConstant           = "memory audit started"
	logFieldRootDirectoryConstant       = "root_directory"
	logFieldDocumentCountConstant       = "document_count"
	logFieldScoreConstant               = "score"
	logFieldThresholdConstant           = "threshold"
	logFieldDuplicateCountConstant      = "duplicate_count"
	logFieldStaleCountConstant          = "stale_count"
	logFieldContradictionCountConstant  = "contradiction_count"
	logFieldOutcomeConstant             = "outcome"
)

// ErrScoreBelowThreshold marks a strict-mode run whose score fell below the
// configured threshold. It is an expected outcome, distinguishable from any
// I/O problem.
var ErrScoreBelowThreshold = errors.New("memory health score below threshold")

// Service orchestrates document collection, scanning, scoring, and
// remediation advice for one corpus.
type Service struct {
	documentSource DocumentSource
	clock          Clock
	logger         *zap.Logger
}

// NewService constructs a Service using the provided dependencies. Nil
// dependencies fall back to the filesystem source, the system clock, and a
// no-op logger.
func NewService(documentSource DocumentSource, clock Clock, logger *zap.Logger) *Service {
	if documentSource == nil {
		documentSource = NewFilesystemDocumentSource()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		documentSource: documentSource,
		clock:          clock,
		logger:         logger,
	}
}

// Run executes one audit: collect, scan, score, advise, and assemble the
// result record. The only error path is a document source that cannot
// interpret its ignore patterns; degenerate corpora always produce a
// well-defined result.
func (service *Service) Run(options CommandOptions) (AuditResult, error) {
	service.logger.Debug(
		runStartedMessageConstant,
		zap.String(logFieldRootDirectoryConstant, options.RootDirectory),
	)

	documents, sourceError := service.documentSource.LoadDocuments(options.RootDirectory, options.IncludeMemoryFile, options.IgnorePatterns)
	if sourceError != nil {
		return AuditResult{}, fmt.Errorf(documentSourceErrorTemplateConstant, sourceError)
	}

	findings := ScanDocuments(documents)
	score := ComputeScore(len(findings.Duplicates), len(findings.StaleCandidates), len(findings.ContradictionHints), options.Weights)
	remediation := AdviseRemediation(findings)

	outcome := AuditOutcomeOK
	if options.Strict && score < options.Threshold {
		outcome = AuditOutcomeStrictFail
	}

	documentIdentifiers := make([]string, 0, len(documents))
	for _, document := range documents {
		documentIdentifiers = append(documentIdentifiers, document.Identifier)
	}

	result := AuditResult{
		GeneratedAt:        service.clock.Now().UTC(),
		Documents:          documentIdentifiers,
		Score:              score,
		Threshold:          options.Threshold,
		Weights:            options.Weights,
		Duplicates:         findings.Duplicates,
		StaleCandidates:    findings.StaleCandidates,
		ContradictionHints: findings.ContradictionHints,
		Remediation:        remediation,
		Outcome:            outcome,
	}

	service.logger.Info(
		runCompletedMessageConstant,
		zap.String(logFieldRootDirectoryConstant, options.RootDirectory),
		zap.Int(logFieldDocumentCountConstant, len(result.Documents)),
		zap.Int(logFieldScoreConstant, result.Score),
		zap.Int(logFieldThresholdConstant, result.Threshold),
		zap.Int(logFieldDuplicateCountConstant, len(result.Duplicates)),
		zap.Int(logFieldStaleCountConstant, len(result.StaleCandidates)),
		zap.Int(logFieldContradictionCountConstant, len(result.ContradictionHints)),
		zap.String(logFieldOutcomeConstant, string(result.Outcome)),
	)

	return result, nil
}
