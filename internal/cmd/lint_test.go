package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/fsxlint/internal/config"
	"github.com/harrison/fsxlint/internal/lint"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv(config.HomeEnv, "")
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func TestLint_CleanProject(t *testing.T) {
	root := writeProject(t, map[string]string{
		"build.fsx":   "#load \"targets.fsx\"\nTarget.runOrDefault \"Build\"\n\"Clean\" ==> \"Build\"\n",
		"targets.fsx": "Target \"Clean\" (fun _ -> ())\nTarget \"Build\" (fun _ -> ())\n",
	})

	_, stderr, err := execute(t, root)

	require.NoError(t, err)
	assert.Contains(t, stderr, "[INFO] root path is")
	assert.Contains(t, stderr, "[INFO] no errors found in 2 build scripts")
	assert.NotContains(t, stderr, "[ERROR]")
}

func TestLint_DanglingLoadFails(t *testing.T) {
	root := writeProject(t, map[string]string{
		"A.fsx": "// build entry\n#load \"B.fsx\"\n",
	})

	_, stderr, err := execute(t, root)

	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.ErrorIs(t, err, lint.ErrLintFailed)
	assert.Contains(t, stderr, `[ERROR] "A.fsx":2 loads non-existent file "B.fsx"`)
	assert.Contains(t, stderr, "[ERROR] found 1 error in build scripts")

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.Quiet)
}

func TestLint_DuplicateTargetsAcrossFiles(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.fsx": "Target \"Build\" (fun _ -> ())\n",
		"b.fsx": "Target \"Build\" (fun _ -> ())\n",
	})

	_, stderr, err := execute(t, root)

	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, 2, strings.Count(stderr, "[ERROR]"))
	assert.Contains(t, stderr, `"b.fsx" defines Target "Build"`)
	assert.NotContains(t, stderr, `"a.fsx" defines`)
}

func TestLint_PedanticFlag(t *testing.T) {
	files := map[string]string{
		"build.fsx":   "#load \"targets.fsx\"\n",
		"targets.fsx": "Target \"Clean\" (fun _ -> ())\n",
	}

	t.Run("off", func(t *testing.T) {
		root := writeProject(t, files)
		_, _, err := execute(t, root)
		assert.NoError(t, err)
	})

	t.Run("on", func(t *testing.T) {
		root := writeProject(t, files)
		_, stderr, err := execute(t, root, "--pedantic")
		assert.Equal(t, 1, exitCode(err))
		assert.Contains(t, stderr, `"build.fsx" loads "targets.fsx" without referencing any targets defined therein`)
	})

	t.Run("from config file", func(t *testing.T) {
		root := writeProject(t, files)
		require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("pedantic: true\n"), 0644))
		_, _, err := execute(t, root)
		assert.Equal(t, 1, exitCode(err))
	})

	t.Run("flag overrides config file", func(t *testing.T) {
		root := writeProject(t, files)
		require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("pedantic: true\n"), 0644))
		_, _, err := execute(t, root, "--pedantic=false")
		assert.NoError(t, err)
	})
}

func TestLint_LogLevel(t *testing.T) {
	files := map[string]string{
		"build.fsx":   "#load \"targets.fsx\"\n",
		"targets.fsx": "Target \"Clean\" (fun _ -> ())\n",
	}

	t.Run("debug shows edges and declarations", func(t *testing.T) {
		root := writeProject(t, files)
		_, stderr, err := execute(t, root, "--log-level", "DEBUG")
		require.NoError(t, err)
		assert.Contains(t, stderr, "[DEBUG]")
		assert.Contains(t, stderr, "is #loaded by")
		assert.Contains(t, stderr, `declares Target "Clean"`)
	})

	t.Run("error hides info", func(t *testing.T) {
		root := writeProject(t, files)
		_, stderr, err := execute(t, root, "--log-level", "ERROR")
		require.NoError(t, err)
		assert.Empty(t, stderr)
	})

	t.Run("invalid level", func(t *testing.T) {
		root := writeProject(t, files)
		_, _, err := execute(t, root, "--log-level", "LOUD")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		var exitErr *ExitError
		assert.False(t, errors.As(err, &exitErr))
	})
}

func TestLint_MissingConfigFile(t *testing.T) {
	root := writeProject(t, map[string]string{"build.fsx": ""})

	_, _, err := execute(t, root, "--config", filepath.Join(root, "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")
}

func TestLint_MissingRoot(t *testing.T) {
	_, stderr, err := execute(t, filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr, "[CRITICAL]")
}

func TestLint_WritesReport(t *testing.T) {
	root := writeProject(t, map[string]string{
		"A.fsx": "#load \"B.fsx\"\n",
	})
	out := filepath.Join(t.TempDir(), "report.json")

	_, stderr, err := execute(t, root, "--report", out, "--report-format", "json")

	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, stderr, "wrote json report")

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var rep struct {
		Passed      bool `json:"passed"`
		Diagnostics []struct {
			Check string `json:"check"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.False(t, rep.Passed)
	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, "dangling-load", rep.Diagnostics[0].Check)
}

func TestLint_InvalidReportFormat(t *testing.T) {
	root := writeProject(t, map[string]string{"build.fsx": ""})

	_, _, err := execute(t, root, "--report", filepath.Join(root, "r.txt"), "--report-format", "pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.format")
}

func TestLint_LogDir(t *testing.T) {
	root := writeProject(t, map[string]string{
		"A.fsx": "#load \"B.fsx\"\n",
	})
	logDir := t.TempDir()

	_, _, err := execute(t, root, "--log-dir", logDir)
	assert.Equal(t, 1, exitCode(err))

	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "loads non-existent file")
}
