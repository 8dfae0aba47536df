package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--help returned error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "fsxlint") {
		t.Errorf("Help text should contain 'fsxlint', got: %s", output)
	}
	if !strings.Contains(output, "#load") {
		t.Errorf("Help text should mention #load, got: %s", output)
	}
	for _, flag := range []string{"--log-level", "--pedantic", "--config", "--report", "--record"} {
		if !strings.Contains(output, flag) {
			t.Errorf("Help text should list %s, got: %s", flag, output)
		}
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Name() != "fsxlint" {
		t.Errorf("Expected command name 'fsxlint', got '%s'", cmd.Name())
	}

	found := false
	for _, sub := range cmd.Commands() {
		if sub.Name() == "history" {
			found = true
		}
	}
	if !found {
		t.Error("Expected history subcommand")
	}
}

func TestVersionFlag(t *testing.T) {
	cmd := NewRootCommand()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version returned error: %v", err)
	}

	if !strings.Contains(buf.String(), Version) {
		t.Errorf("Version output should contain %q, got: %s", Version, buf.String())
	}
}

func TestRootCommandRejectsExtraArgs(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"a", "b"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for two positional arguments")
	}
}
