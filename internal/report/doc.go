// Package report renders audit results into the Markdown and JSON report
// formats written at the end of a memdoc run.
package report
