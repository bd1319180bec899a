// Package utils provides shared infrastructure for the memdoc CLI:
// configuration loading, logger construction, and output plumbing.
package utils
