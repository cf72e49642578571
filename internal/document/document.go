// Package document owns the text file being annotated: loading, atomic
// saves, and reconciling external writes with unsaved edits.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/marktime/internal/log"
)

// defaultFileMode is used when Save creates the file.
const defaultFileMode os.FileMode = 0o644

// Document is an in-memory buffer backed by a file.
type Document struct {
	path    string
	content string
	saved   string // content as last read from or written to disk
}

// Load reads path. A missing file yields an empty document that will be
// created on the first save.
func Load(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	data, err := os.ReadFile(abs) //nolint:gosec // G304: the user chose this file
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}

	text := Decode(data)
	log.Debug(log.CatDoc, "loaded", "path", abs, "bytes", len(data))
	return &Document{path: abs, content: text, saved: text}, nil
}

// Decode converts file bytes to buffer text. Invalid UTF-8 sequences become
// U+FFFD, so the buffer is always valid UTF-8.
func Decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	log.Warn(log.CatDoc, "replacing invalid UTF-8", "bytes", len(data))
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// Path returns the absolute file path.
func (d *Document) Path() string { return d.path }

// Content returns the current buffer.
func (d *Document) Content() string { return d.content }

// SetContent replaces the buffer.
func (d *Document) SetContent(s string) { d.content = s }

// Dirty reports whether the buffer differs from the file.
func (d *Document) Dirty() bool { return d.content != d.saved }

// Save writes the buffer atomically: a temp file in the same directory is
// renamed over the target. A symlinked path is written through to the file
// it points at, and an existing file keeps its permission bits.
func (d *Document) Save() error {
	target := d.path
	if resolved, err := filepath.EvalSymlinks(d.path); err == nil {
		target = resolved
	}

	perm := defaultFileMode
	if fi, err := os.Stat(target); err == nil {
		perm = fi.Mode().Perm()
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.WriteString(d.content); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Chmod(perm); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, target); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	d.saved = d.content
	log.Info(log.CatDoc, "saved", "path", d.path, "bytes", len(d.content))
	return nil
}

// ReloadResult describes what Reload did.
type ReloadResult int

const (
	// Unchanged means the file matches what was last loaded or saved.
	Unchanged ReloadResult = iota
	// Reloaded means the buffer was clean and now holds the new file content.
	Reloaded
	// Conflict means the file changed while the buffer had unsaved edits;
	// the buffer is kept.
	Conflict
)

func (r ReloadResult) String() string {
	switch r {
	case Unchanged:
		return "unchanged"
	case Reloaded:
		return "reloaded"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Reload reconciles the buffer with the file on disk. The returned Summary
// compares the buffer with the new file content and is zero when Unchanged.
func (d *Document) Reload() (ReloadResult, Summary, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Unchanged, Summary{}, nil
	}
	if err != nil {
		return Unchanged, Summary{}, fmt.Errorf("reading %s: %w", d.path, err)
	}

	disk := Decode(data)
	if disk == d.saved {
		return Unchanged, Summary{}, nil
	}

	summary := Summarize(d.content, disk)
	if d.Dirty() {
		d.saved = disk
		log.Warn(log.CatDoc, "external change conflicts with unsaved edits",
			"path", d.path, "inserted", summary.Inserted, "deleted", summary.Deleted)
		return Conflict, summary, nil
	}

	d.content, d.saved = disk, disk
	log.Info(log.CatDoc, "reloaded", "path", d.path)
	return Reloaded, summary, nil
}
