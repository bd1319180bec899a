// Package audit implements the memory-note hygiene engine used by the memdoc
// CLI: document collection with ignore patterns, duplicate and stale-marker
// scanning, contradiction hints, weighted health scoring, and remediation
// advice.
//
// It exposes CommandBuilder for wiring the audit Cobra command and Service for
// driving audits programmatically against any DocumentSource.
package audit
