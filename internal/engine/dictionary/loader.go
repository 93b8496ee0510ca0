package dictionary

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/syntorio/synthid/internal/errors"
)

// ErrDictionaryNotFound indicates a required dataset does not exist in the
// backing store. The caller cannot proceed without it.
var ErrDictionaryNotFound = apperrors.Wrap(apperrors.ErrNotFound, "dictionary not found")

// Loader reads the raw bytes of a named dataset from a backing store.
type Loader interface {
	Load(name string) ([]byte, error)
}

// DirLoader loads datasets from JSON files in a base directory.
type DirLoader struct {
	base string
}

// NewDirLoader creates a Loader over the given directory.
func NewDirLoader(base string) *DirLoader {
	return &DirLoader{base: base}
}

// Load reads <base>/<name>.json.
func (l *DirLoader) Load(name string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(l.base, fileName(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(ErrDictionaryNotFound, name)
		}
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to read dictionary %q", name))
	}
	return raw, nil
}

// FSLoader loads datasets from an fs.FS, typically the embedded snapshot.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a Loader over the given filesystem.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Load reads <name>.json from the filesystem.
func (l *FSLoader) Load(name string) ([]byte, error) {
	raw, err := fs.ReadFile(l.fsys, fileName(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(ErrDictionaryNotFound, name)
		}
		return nil, apperrors.Wrap(err, fmt.Sprintf("failed to read dictionary %q", name))
	}
	return raw, nil
}

// fileName appends the .json extension unless the name already carries it.
func fileName(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}
