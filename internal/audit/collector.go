package audit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
)

const (
	markdownExtensionConstant              = ".md"
	wellKnownFileNameConstant              = "MEMORY.md"
	defaultWorkingDirectoryConstant        = "."
	ignorePatternCompileErrorTemplateConst = "invalid ignore pattern %q: %w"
)

// DocumentSource supplies the ordered corpus for one audit run. Implementations
// degrade unreadable entries to empty content instead of failing the run.
type DocumentSource interface {
	LoadDocuments(rootDirectory string, includeWellKnownFile bool, ignorePatterns []string) ([]Document, error)
}

// FilesystemDocumentSource loads markdown documents from disk.
type FilesystemDocumentSource struct {
	// WorkingDirectory anchors the well-known file lookup; empty means the
	// process working directory.
	WorkingDirectory string
}

// NewFilesystemDocumentSource constructs a document source backed by the local filesystem.
func NewFilesystemDocumentSource() *FilesystemDocumentSource {
	return &FilesystemDocumentSource{}
}

// LoadDocuments enumerates markdown files beneath rootDirectory in
// lexicographic identifier order, drops identifiers matching any ignore
// pattern, and optionally appends the well-known top-level file last. A
// missing root directory contributes zero documents. Files that fail to read
// or decode as UTF-8 become empty-content documents.
func (source *FilesystemDocumentSource) LoadDocuments(rootDirectory string, includeWellKnownFile bool, ignorePatterns []string) ([]Document, error) {
	ignoreMatchers, compileError := compileIgnorePatterns(ignorePatterns)
	if compileError != nil {
		return nil, compileError
	}

	identifierPaths := map[string]string{}
	identifiers := source.enumerateMarkdownFiles(rootDirectory, identifierPaths)

	if includeWellKnownFile {
		wellKnownPath := filepath.Join(source.workingDirectory(), wellKnownFileNameConstant)
		if fileInfo, statError := os.Stat(wellKnownPath); statError == nil && !fileInfo.IsDir() {
			if _, alreadyCollected := identifierPaths[wellKnownFileNameConstant]; !alreadyCollected {
				identifiers = append(identifiers, wellKnownFileNameConstant)
				identifierPaths[wellKnownFileNameConstant] = wellKnownPath
			}
		}
	}

	documents := make([]Document, 0, len(identifiers))
	for _, identifier := range identifiers {
		if matchesAnyPattern(ignoreMatchers, identifier) {
			continue
		}
		documents = append(documents, Document{
			Identifier: identifier,
			Content:    readDocumentContent(identifierPaths[identifier]),
		})
	}

	return documents, nil
}

func (source *FilesystemDocumentSource) workingDirectory() string {
	trimmed := strings.TrimSpace(source.WorkingDirectory)
	if len(trimmed) == 0 {
		return defaultWorkingDirectoryConstant
	}
	return trimmed
}

func (source *FilesystemDocumentSource) enumerateMarkdownFiles(rootDirectory string, identifierPaths map[string]string) []string {
	rootInfo, rootStatError := os.Stat(rootDirectory)
	if rootStatError != nil || !rootInfo.IsDir() {
		return nil
	}

	var identifiers []string
	_ = filepath.WalkDir(rootDirectory, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}
		if !strings.HasSuffix(directoryEntry.Name(), markdownExtensionConstant) {
			return nil
		}

		relativePath, relativeError := filepath.Rel(rootDirectory, currentPath)
		if relativeError != nil {
			return nil
		}

		identifier := filepath.ToSlash(relativePath)
		if _, alreadyCollected := identifierPaths[identifier]; alreadyCollected {
			return nil
		}

		identifierPaths[identifier] = currentPath
		identifiers = append(identifiers, identifier)
		return nil
	})

	sort.Strings(identifiers)
	return identifiers
}

// readDocumentContent swallows read and decode failures so one corrupt note
// never blocks auditing the rest of the corpus.
func readDocumentContent(documentPath string) string {
	contentBytes, readError := os.ReadFile(documentPath)
	if readError != nil {
		return ""
	}
	if !utf8.Valid(contentBytes) {
		return ""
	}
	return string(contentBytes)
}

func compileIgnorePatterns(ignorePatterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(ignorePatterns))
	for _, pattern := range ignorePatterns {
		matcher, compileError := glob.Compile(pattern)
		if compileError != nil {
			return nil, fmt.Errorf(ignorePatternCompileErrorTemplateConst, pattern, compileError)
		}
		matchers = append(matchers, matcher)
	}
	return matchers, nil
}

func matchesAnyPattern(matchers []glob.Glob, identifier string) bool {
	for _, matcher := range matchers {
		if matcher.Match(identifier) {
			return true
		}
	}
	return false
}
