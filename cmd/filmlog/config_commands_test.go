package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newConfigInitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--path", target})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "tmdb") {
		t.Fatalf("sample config missing tmdb section:\n%s", data)
	}
	if !strings.Contains(out.String(), target) {
		t.Fatalf("expected output to mention %s, got %q", target, out.String())
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	cmd := newConfigInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--path", target})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected overwrite refusal")
	}
}

func TestConfigShowRedactsSecrets(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TMDB_API_KEY", "super-secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("LLM_API_KEY", "")

	cmd := newConfigShowCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "[tmdb]") {
		t.Fatalf("expected tmdb section in output:\n%s", output)
	}
	if strings.Contains(output, "super-secret") {
		t.Fatalf("secret leaked into output:\n%s", output)
	}
	if !strings.Contains(output, "<set>") {
		t.Fatalf("expected redacted api key marker:\n%s", output)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"ID", "Title"},
		[][]string{{"1", "Дюна"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	if !strings.Contains(out, "Дюна") || !strings.Contains(out, "ID") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}
