package tests

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/memdoc/cmd/cli"
	"github.com/temirov/memdoc/internal/audit"
)

const (
	integrationMemoryDirectoryName  = "memory"
	integrationConfigurationName    = "config.yaml"
	integrationWellKnownFileName    = "MEMORY.md"
	integrationDirectoryPermissions = 0o755
	integrationFilePermissions      = 0o644
	integrationAuditCommandName     = "audit"
	integrationConfigFlagName       = "--config"
	integrationLogLevelFlagName     = "--log-level"
	integrationErrorLogLevelName    = "error"
)

type integrationWeightsConfiguration struct {
	Duplicate     int `yaml:"duplicate"`
	Stale         int `yaml:"stale"`
	Contradiction int `yaml:"contradiction"`
}

type integrationAuditConfiguration struct {
	Directory      string                          `yaml:"dir"`
	ReportPath     string                          `yaml:"report"`
	JSONReportPath string                          `yaml:"json_report"`
	IgnorePatterns []string                        `yaml:"ignore,omitempty"`
	MemoryFile     bool                            `yaml:"memory_file"`
	Threshold      int                             `yaml:"threshold"`
	Strict         bool                            `yaml:"strict"`
	Weights        integrationWeightsConfiguration `yaml:"weights"`
}

type integrationConfiguration struct {
	Tools struct {
		Audit integrationAuditConfiguration `yaml:"audit"`
	} `yaml:"tools"`
}

func changeWorkingDirectory(testInstance *testing.T, targetDirectory string) {
	testInstance.Helper()

	previousDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	require.NoError(testInstance, os.Chdir(targetDirectory))
	testInstance.Cleanup(func() {
		require.NoError(testInstance, os.Chdir(previousDirectory))
	})
}

func writeIntegrationConfiguration(testInstance *testing.T, workspaceDirectory string, auditConfiguration integrationAuditConfiguration) string {
	testInstance.Helper()

	var configuration integrationConfiguration
	configuration.Tools.Audit = auditConfiguration

	encoded, encodeError := yaml.Marshal(configuration)
	require.NoError(testInstance, encodeError)

	configurationPath := filepath.Join(workspaceDirectory, integrationConfigurationName)
	require.NoError(testInstance, os.WriteFile(configurationPath, encoded, integrationFilePermissions))
	return configurationPath
}

func writeIntegrationNote(testInstance *testing.T, workspaceDirectory string, relativePath string, content string) {
	testInstance.Helper()

	fullPath := filepath.Join(workspaceDirectory, relativePath)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(fullPath), integrationDirectoryPermissions))
	require.NoError(testInstance, os.WriteFile(fullPath, []byte(content), integrationFilePermissions))
}

func defaultIntegrationConfiguration(workspaceDirectory string) integrationAuditConfiguration {
	return integrationAuditConfiguration{
		Directory:      filepath.Join(workspaceDirectory, integrationMemoryDirectoryName),
		ReportPath:     filepath.Join(workspaceDirectory, "report.md"),
		JSONReportPath: filepath.Join(workspaceDirectory, "report.json"),
		MemoryFile:     false,
		Threshold:      70,
		Weights:        integrationWeightsConfiguration{Duplicate: 2, Stale: 1, Contradiction: 5},
	}
}

func runIntegrationAudit(testInstance *testing.T, configurationPath string, additionalArguments ...string) error {
	testInstance.Helper()

	arguments := append(
		[]string{integrationAuditCommandName, integrationConfigFlagName, configurationPath, integrationLogLevelFlagName, integrationErrorLogLevelName},
		additionalArguments...,
	)
	return cli.NewApplication().ExecuteWithArguments(arguments)
}

func decodeIntegrationJSONReport(testInstance *testing.T, jsonPath string) map[string]any {
	testInstance.Helper()

	contentBytes, readError := os.ReadFile(jsonPath)
	require.NoError(testInstance, readError)

	var decoded map[string]any
	require.NoError(testInstance, json.Unmarshal(contentBytes, &decoded))
	return decoded
}

func TestAuditCommandIntegrationDuplicateScenario(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	writeIntegrationNote(testInstance, workspaceDirectory, filepath.Join(integrationMemoryDirectoryName, "doc1.md"), "This is a duplicated longer statement line\n")
	writeIntegrationNote(testInstance, workspaceDirectory, filepath.Join(integrationMemoryDirectoryName, "doc2.md"), "This is a duplicated longer statement line\n")

	configurationPath := writeIntegrationConfiguration(testInstance, workspaceDirectory, defaultIntegrationConfiguration(workspaceDirectory))
	require.NoError(testInstance, runIntegrationAudit(testInstance, configurationPath))

	decoded := decodeIntegrationJSONReport(testInstance, filepath.Join(workspaceDirectory, "report.json"))
	require.Equal(testInstance, float64(98), decoded["score"])

	duplicates := decoded["duplicates"].([]any)
	require.Len(testInstance, duplicates, 1)
	firstDuplicate := duplicates[0].(map[string]any)
	require.Equal(testInstance, "doc1.md:1", firstDuplicate["first"])
	require.Equal(testInstance, "doc2.md:1", firstDuplicate["second"])

	markdownContent, markdownReadError := os.ReadFile(filepath.Join(workspaceDirectory, "report.md"))
	require.NoError(testInstance, markdownReadError)
	require.Contains(testInstance, string(markdownContent), "Score: **98/100**")
}

func TestAuditCommandIntegrationWellKnownFileInclusion(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	changeWorkingDirectory(testInstance, workspaceDirectory)

	writeIntegrationNote(testInstance, workspaceDirectory, filepath.Join(integrationMemoryDirectoryName, "doc1.md"), "A perfectly ordinary statement line\n")
	writeIntegrationNote(testInstance, workspaceDirectory, integrationWellKnownFileName, "TODO: reconcile the memory index entries\n")

	auditConfiguration := defaultIntegrationConfiguration(workspaceDirectory)
	auditConfiguration.MemoryFile = true
	configurationPath := writeIntegrationConfiguration(testInstance, workspaceDirectory, auditConfiguration)

	require.NoError(testInstance, runIntegrationAudit(testInstance, configurationPath))

	decoded := decodeIntegrationJSONReport(testInstance, filepath.Join(workspaceDirectory, "report.json"))
	files := decoded["files"].([]any)
	require.Len(testInstance, files, 2)
	require.Equal(testInstance, integrationWellKnownFileName, files[1])
	require.Equal(testInstance, float64(99), decoded["score"])
}

func TestAuditCommandIntegrationIgnorePatternsExcludeDocuments(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	writeIntegrationNote(testInstance, workspaceDirectory, filepath.Join(integrationMemoryDirectoryName, "keep.md"), "A perfectly ordinary statement line\n")
	writeIntegrationNote(testInstance, workspaceDirectory, filepath.Join(integrationMemoryDirectoryName, "drafts", "skip.md"), "TODO: revisit this decision before shipping\n")

	auditConfiguration := defaultIntegrationConfiguration(workspaceDirectory)
	auditConfiguration.IgnorePatterns = []string{"drafts/*"}
	configurationPath := writeIntegrationConfiguration(testInstance, workspaceDirectory, auditConfiguration)

	require.NoError(testInstance, runIntegrationAudit(testInstance, configurationPath))

	decoded := decodeIntegrationJSONReport(testInstance, filepath.Join(workspaceDirectory, "report.json"))
	files := decoded["files"].([]any)
	require.Len(testInstance, files, 1)
	require.Equal(testInstance, "keep.md", files[0])
	require.Equal(testInstance, float64(100), decoded["score"])
}

func TestAuditCommandIntegrationStrictModeFailure(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	writeIntegrationNote(testInstance, workspaceDirectory, filepath.Join(integrationMemoryDirectoryName, "doc1.md"), "We always validate input before use.\nWe never trust external data directly.\n")

	auditConfiguration := defaultIntegrationConfiguration(workspaceDirectory)
	auditConfiguration.Strict = true
	auditConfiguration.Threshold = 96
	configurationPath := writeIntegrationConfiguration(testInstance, workspaceDirectory, auditConfiguration)

	executionError := runIntegrationAudit(testInstance, configurationPath)
	require.Error(testInstance, executionError)
	require.True(testInstance, errors.Is(executionError, audit.ErrScoreBelowThreshold))

	decoded := decodeIntegrationJSONReport(testInstance, filepath.Join(workspaceDirectory, "report.json"))
	require.Equal(testInstance, float64(95), decoded["score"])
	require.Equal(testInstance, string(audit.AuditOutcomeStrictFail), decoded["outcome"])
}

func TestAuditCommandIntegrationStrictModeDisabledAllowsLowScore(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	writeIntegrationNote(testInstance, workspaceDirectory, filepath.Join(integrationMemoryDirectoryName, "doc1.md"), "We always validate input before use.\nWe never trust external data directly.\n")

	auditConfiguration := defaultIntegrationConfiguration(workspaceDirectory)
	auditConfiguration.Threshold = 96
	configurationPath := writeIntegrationConfiguration(testInstance, workspaceDirectory, auditConfiguration)

	require.NoError(testInstance, runIntegrationAudit(testInstance, configurationPath))

	decoded := decodeIntegrationJSONReport(testInstance, filepath.Join(workspaceDirectory, "report.json"))
	require.Equal(testInstance, float64(95), decoded["score"])
	require.Equal(testInstance, string(audit.AuditOutcomeOK), decoded["outcome"])
}

func TestAuditCommandIntegrationEmptyCorpus(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()

	configurationPath := writeIntegrationConfiguration(testInstance, workspaceDirectory, defaultIntegrationConfiguration(workspaceDirectory))
	require.NoError(testInstance, runIntegrationAudit(testInstance, configurationPath))

	decoded := decodeIntegrationJSONReport(testInstance, filepath.Join(workspaceDirectory, "report.json"))
	require.Equal(testInstance, float64(100), decoded["score"])
	require.Empty(testInstance, decoded["files"])
	require.Equal(testInstance, []any{"No action needed."}, decoded["remediation"])
}
