package registry

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/lucaswerkmeister/clean-recently-used/internal/xbel"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<xbel version="1.0"
      xmlns:bookmark="http://www.freedesktop.org/standards/desktop-bookmarks"
      xmlns:mime="http://www.freedesktop.org/standards/shared-mime-info"
>
  <bookmark href="file:///tmp/a.txt" added="2020-09-24T20:00:00Z" modified="2020-09-25T20:00:00Z" visited="2020-09-25T20:00:00Z">
  </bookmark>
  <bookmark href="file:///home/user/c.txt" added="2020-09-24T20:00:00Z" modified="2020-09-25T20:00:00Z" visited="2020-09-25T20:00:00Z">
  </bookmark>
</xbel>
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		t.Fatalf("failed to write registry: %v", err)
	}
	return path
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	path := DefaultPath()
	if filepath.Base(path) != FileName {
		t.Errorf("expected file name %q, got %q", FileName, filepath.Base(path))
	}
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %q", path)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file loads as empty document", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), FileName)

		reg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reg.Exists {
			t.Error("expected Exists to be false")
		}
		if !reg.Document.Empty() {
			t.Error("expected empty document")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected Load not to create the file")
		}
	})

	t.Run("existing file is parsed", func(t *testing.T) {
		t.Parallel()
		path := writeSample(t, sample)

		reg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reg.Exists {
			t.Error("expected Exists to be true")
		}
		if n := len(reg.Document.Bookmarks()); n != 2 {
			t.Errorf("expected 2 bookmarks, got %d", n)
		}
		if string(reg.Content) != sample {
			t.Error("expected Content to hold the file bytes")
		}
		if runtime.GOOS != "windows" && reg.Mode != 0640 {
			t.Errorf("expected mode 0640, got %o", reg.Mode)
		}
	})

	t.Run("malformed file returns ParseError", func(t *testing.T) {
		t.Parallel()
		path := writeSample(t, "<xbel><bookmark>")

		_, err := Load(path)
		var perr *xbel.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *xbel.ParseError, got %v", err)
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("expected error to mention %s, got %v", path, err)
		}
	})

	t.Run("directory returns IOError", func(t *testing.T) {
		t.Parallel()
		_, err := Load(t.TempDir())
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("expected *IOError, got %v", err)
		}
	})
}

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("writes filtered document", func(t *testing.T) {
		t.Parallel()
		path := writeSample(t, sample)
		reg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		reg.Document.RemoveBookmarks(func(b *xbel.Bookmark) bool {
			return b.Href() == "file:///tmp/a.txt"
		})
		if err := reg.Save(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if strings.Contains(string(content), "/tmp/a.txt") {
			t.Error("expected removed bookmark to be gone")
		}
		if !strings.Contains(string(content), "/home/user/c.txt") {
			t.Error("expected kept bookmark to remain")
		}
		if string(reg.Content) != string(content) {
			t.Error("expected Content to be updated")
		}
		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("failed to stat: %v", err)
			}
			if info.Mode().Perm() != 0640 {
				t.Errorf("expected mode to be preserved, got %o", info.Mode().Perm())
			}
		}
	})

	t.Run("failure returns IOError and keeps original", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("directory permissions are not enforced")
		}
		path := writeSample(t, sample)
		reg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		dir := filepath.Dir(path)
		if err := os.Chmod(dir, 0500); err != nil {
			t.Fatalf("failed to chmod: %v", err)
		}
		t.Cleanup(func() { _ = os.Chmod(dir, 0700) })

		reg.Document.RemoveBookmarks(func(*xbel.Bookmark) bool { return true })
		err = reg.Save()
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("expected *IOError, got %v", err)
		}
		if ioErr.Op != "write" {
			t.Errorf("expected op 'write', got %q", ioErr.Op)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(content) != sample {
			t.Error("expected original content to be untouched")
		}
	})
}
