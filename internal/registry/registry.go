// Package registry locates, loads and stores the recently-used registry.
//
// The registry lives at $XDG_DATA_HOME/recently-used.xbel. A missing file is
// not an error: it loads as an empty document and is never created by Store
// unless the caller asks for it explicitly.
package registry

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/lucaswerkmeister/clean-recently-used/internal/atomicfile"
	"github.com/lucaswerkmeister/clean-recently-used/internal/xbel"
)

// FileName is the registry file name inside the XDG data directory.
const FileName = "recently-used.xbel"

// defaultPerm is used when the registry does not exist yet.
const defaultPerm fs.FileMode = 0o600

// IOError reports a failed read, write or rename of the registry.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("registry %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}

// DefaultPath returns the well-known per-user registry location.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, FileName)
}

// Registry is a loaded registry file.
type Registry struct {
	// Path is the location the registry was loaded from and is stored to.
	Path string

	// Document is the parsed content; empty when the file does not exist.
	Document *xbel.Document

	// Exists reports whether the file was present when loaded.
	Exists bool

	// Content holds the bytes last read from or written to Path.
	Content []byte

	// Mode holds the permission bits of the file, reused on store.
	Mode fs.FileMode
}

// Load reads and parses the registry at path. A missing file yields an
// empty document with Exists set to false. Parse failures are returned as
// *xbel.ParseError wrapped with the path, read failures as *IOError.
func Load(path string) (*Registry, error) {
	reg := &Registry{
		Path:     path,
		Document: xbel.NewDocument(),
		Mode:     defaultPerm,
	}

	f, err := os.Open(path) //nolint:gosec // The registry path is resolved by the program
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return reg, nil
		}
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	doc, err := xbel.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	reg.Document = doc
	reg.Exists = true
	reg.Content = data
	reg.Mode = info.Mode().Perm()
	return reg, nil
}

// Save encodes the document and atomically replaces the file at Path.
// On failure the file on disk is left untouched.
func (r *Registry) Save() error {
	data := r.Document.Bytes()
	if err := Store(r.Path, data, r.Mode); err != nil {
		return err
	}
	r.Content = data
	r.Exists = true
	return nil
}

// Store atomically replaces path with data.
func Store(path string, data []byte, perm fs.FileMode) error {
	err := atomicfile.WriteFile(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
