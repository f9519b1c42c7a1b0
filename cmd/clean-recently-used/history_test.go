package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucaswerkmeister/clean-recently-used/internal/journal"
	"github.com/lucaswerkmeister/clean-recently-used/internal/model"
)

func TestHistory(t *testing.T) {
	t.Parallel()

	t.Run("no journal lists no runs", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, "", "")

		stdout, _, err := execute(t, "history", "--config", env.config)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "No runs recorded.\n" {
			t.Errorf("unexpected output %q", stdout)
		}
		if _, err := os.Stat(env.journalDir); !os.IsNotExist(err) {
			t.Error("expected history not to create the journal")
		}
	})

	t.Run("records runs and lists them newest first", func(t *testing.T) {
		t.Parallel()
		original := registryOf("file:///tmp/a.txt", "file:///home/user/c.txt")
		env := newTestEnv(t, original, "")

		if _, _, err := execute(t, "--config", env.config, "--journal", "--dry-run", "/tmp"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := execute(t, "--config", env.config, "--journal", "/tmp"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(env.journalDir, journal.FileName)); err != nil {
			t.Fatalf("expected journal to exist: %v", err)
		}

		stdout, _, err := execute(t, "history", "--config", env.config, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var runs []model.Run
		if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}

		latest, dry := runs[0], runs[1]
		if !latest.Written || latest.DryRun || latest.Removed != 1 || latest.Kept != 1 {
			t.Errorf("unexpected latest run %+v", latest)
		}
		if !dry.DryRun || dry.Written || dry.Removed != 1 {
			t.Errorf("unexpected dry run %+v", dry)
		}
		if dry.DigestBefore != journal.Digest([]byte(original)) || dry.DigestAfter != dry.DigestBefore {
			t.Error("expected dry run digests to match the untouched registry")
		}
		if latest.DigestBefore != dry.DigestAfter {
			t.Error("expected the rewrite to start from the dry run's content")
		}
		if latest.DigestAfter != journal.Digest([]byte(env.read(t))) {
			t.Error("expected digest of the rewritten registry")
		}

		stdout, _, err = execute(t, "history", "--config", env.config, "--limit", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lines := strings.Split(strings.TrimSpace(stdout), "\n"); len(lines) != 1 {
			t.Errorf("expected 1 line, got %q", stdout)
		}
	})

	t.Run("shows the entries of one run", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, registryOf("file:///tmp/a.txt", "file:///home/user/c.txt"), "journal: true\n")

		if _, _, err := execute(t, "--config", env.config, "/tmp"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stdout, _, err := execute(t, "history", "--config", env.config, "--run", "1", "--markdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "## Removed Entries") || !strings.Contains(stdout, "/tmp/a.txt") {
			t.Errorf("unexpected output:\n%s", stdout)
		}

		_, _, err = execute(t, "history", "--config", env.config, "--run", "99")
		if err == nil || !strings.Contains(err.Error(), "run 99 not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("rejects conflicting formats", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, "", "")
		if _, _, err := execute(t, "history", "--config", env.config, "--json", "--markdown"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestRunSummary(t *testing.T) {
	t.Parallel()

	r := model.Run{
		ID:           3,
		RegistryPath: "/r.xbel",
		Prefixes:     []string{"/tmp"},
		Kept:         2,
		Written:      true,
		DigestBefore: "aa",
	}
	entries := []model.RemovedEntry{{Href: "file:///tmp/a", Path: "/tmp/a", Rule: "/tmp"}}

	s := runSummary(r, entries)
	if s.RegistryPath != "/r.xbel" || s.Kept != 2 || !s.Written || !s.Existed {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.RemovedCount() != 1 {
		t.Errorf("expected 1 removed entry, got %d", s.RemovedCount())
	}
}
