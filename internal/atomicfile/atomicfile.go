// Package atomicfile replaces files so that readers observe either the old
// or the new content, never a partial write.
//
// A File is a temporary file created in the target's directory (renaming
// only is atomic within one filesystem). It is written, flushed and synced,
// then renamed over the target by Commit. Close, normally deferred right
// after Create, removes the temporary file unless Commit succeeded:
//
//	f, err := atomicfile.Create(path, 0o600)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	if _, err := f.Write(data); err != nil {
//	    return err
//	}
//	return f.Commit()
package atomicfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrClosed is returned when writing to or committing a File that was
// already committed or closed.
var ErrClosed = errors.New("atomicfile: file already closed")

// File is a pending replacement of a target file.
type File struct {
	target string
	tmp    *os.File
	w      *bufio.Writer
	done   bool
}

// Create creates a temporary file next to target with the given permission
// bits. The target itself is not touched until Commit.
func Create(target string, perm fs.FileMode) (*File, error) {
	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temporary file: %w", err)
	}
	if err := tmp.Chmod(perm.Perm()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("set temporary file mode: %w", err)
	}
	return &File{
		target: target,
		tmp:    tmp,
		w:      bufio.NewWriter(tmp),
	}, nil
}

// Name returns the path of the temporary file.
func (f *File) Name() string {
	return f.tmp.Name()
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	if f.done {
		return 0, ErrClosed
	}
	return f.w.Write(p)
}

// Commit flushes and syncs the temporary file and renames it over the
// target. On failure the temporary file is removed and the target is left
// as it was.
func (f *File) Commit() error {
	if f.done {
		return ErrClosed
	}
	f.done = true

	if err := f.w.Flush(); err != nil {
		f.discard()
		return fmt.Errorf("write temporary file: %w", err)
	}
	if err := f.tmp.Sync(); err != nil {
		f.discard()
		return fmt.Errorf("sync temporary file: %w", err)
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmp.Name())
		return fmt.Errorf("close temporary file: %w", err)
	}
	if err := os.Rename(f.tmp.Name(), f.target); err != nil {
		_ = os.Remove(f.tmp.Name())
		return fmt.Errorf("replace %s: %w", f.target, err)
	}
	return nil
}

// Close abandons the replacement and removes the temporary file. It is a
// no-op after Commit, so it can always be deferred.
func (f *File) Close() error {
	if f.done {
		return nil
	}
	f.done = true
	f.discard()
	return nil
}

func (f *File) discard() {
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
}

// WriteFile atomically replaces target with whatever fn writes.
func WriteFile(target string, perm fs.FileMode, fn func(w io.Writer) error) error {
	f, err := Create(target, perm)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return err
	}
	return f.Commit()
}
