package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testApplication = `
id: LN-9
stages:
  - id: s1
    ordinal: 1
    title: KYC
    status: completed
    can_update: true
    can_summarize: true
    sub_steps:
      - id: a
        label: PAN verification
        completed: true
  - id: s2
    ordinal: 2
    title: Income
    status: pending
    can_summarize: true
    can_continue: true
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeApplication(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRenderStepperFrame(t *testing.T) {
	dir := t.TempDir()
	path := writeApplication(t, dir, testApplication)
	out, err := execute(t, "render", path, "--dir", dir, "--plain", "--mode", "stepper", "--step", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ KYC ── ◷ Income")
	assert.Contains(t, out, "STAGE 2 Income [Pending]")
	assert.Contains(t, out, "Continue")
	assert.NotContains(t, out, "STAGE 1 KYC")
	assert.FileExists(t, filepath.Join(dir, ".stagetrack", "logs", "journey.log"))
}

func TestValidateReportsAnomalies(t *testing.T) {
	dir := t.TempDir()
	path := writeApplication(t, dir, testApplication+`
  - id: s2
    title: Again
    status: archived
`)
	_, err := execute(t, "validate", path, "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid status "archived"`)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestValidateCleanDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeApplication(t, dir, testApplication)
	out, err := execute(t, "validate", path, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Application LN-9: 2 stage(s) OK")
}
