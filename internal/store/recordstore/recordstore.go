package recordstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/record"
	"github.com/Makepad-fr/todo/internal/store"
)

// One file per item, <dir>/<id><ext>, human-readable and hand-editable.
// No locking: two invocations writing the same id race, last write wins.
// Writes go through a temp file and rename, so a record is never torn.

const (
	DefaultDir = ".todo"
	DefaultExt = ".todo"

	dirPerms  = 0o750
	filePerms = 0o644
)

// ErrIO marks failures to read, write or remove records.
var ErrIO = errors.New("record i/o")

// Dir is a directory of item records.
type Dir struct {
	path string
	ext  string
}

// New returns a Dir rooted at path. An ext without a leading dot gets one.
func New(path, ext string) *Dir {
	if path == "" {
		path = DefaultDir
	}
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Dir{path: path, ext: ext}
}

func (d *Dir) Root() string { return d.path }

// Path returns where the record for id lives.
func (d *Dir) Path(id string) string {
	return filepath.Join(d.path, id+d.ext)
}

// Exists reports whether a record for id is on disk.
func (d *Dir) Exists(id string) bool {
	_, err := os.Stat(d.Path(id))
	return err == nil
}

// Load decodes every record in the directory into a new store, in file
// name order. A missing directory is an empty store.
func (d *Dir) Load(log *slog.Logger) (*store.Store, error) {
	files, err := filepath.Glob(filepath.Join(globEscape(d.path), "*"+globEscape(d.ext)))
	if err != nil {
		return nil, fmt.Errorf("%w: glob %s: %w", ErrIO, d.path, err)
	}
	s := store.New()
	for _, f := range files {
		it, err := record.DecodeFile(f, d.ext, log)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		s.Insert(it)
	}
	return s, nil
}

// Write persists it, creating the directory on first use.
func (d *Dir) Write(it model.Item) error {
	if err := it.Validate(); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := os.MkdirAll(d.path, dirPerms); err != nil {
		return fmt.Errorf("%w: mkdir: %w", ErrIO, err)
	}
	p := d.Path(it.ID)
	if err := atomic.WriteFile(p, strings.NewReader(record.Encode(it))); err != nil {
		return fmt.Errorf("%w: write file: %w", ErrIO, err)
	}
	// atomic.WriteFile keeps the mode of an existing file but creates new ones 0600.
	if err := os.Chmod(p, filePerms); err != nil {
		return fmt.Errorf("%w: chmod: %w", ErrIO, err)
	}
	return nil
}

// Remove deletes the record for id.
func (d *Dir) Remove(id string) error {
	if err := os.Remove(d.Path(id)); err != nil {
		return fmt.Errorf("%w: remove: %w", ErrIO, err)
	}
	return nil
}

func globEscape(s string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`)
	return r.Replace(s)
}
