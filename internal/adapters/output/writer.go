// Package output provides adapters for writing rendered version output.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered version output to a stream. By default, it writes
// to stdout so build systems can capture the rendering directly.
type Writer struct {
	out io.Writer
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{out: os.Stdout}
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteRendered writes the rendered content followed by a single trailing
// newline, however many the renderer left on it.
func (w *Writer) WriteRendered(content string) error {
	_, err := io.WriteString(w.out, normalize(content))
	return err
}

// FileWriter writes rendered version output to a file. Writes are atomic:
// the content lands in a temp file that is fsynced and renamed over the
// destination, so an interrupted build never sees a truncated generated
// header.
type FileWriter struct {
	path string
}

// NewFileWriter creates a FileWriter targeting path. The file is replaced
// on every write; generated output is never appended to or hand-edited.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// WriteRendered atomically replaces the target file with the rendered
// content plus a single trailing newline.
func (w *FileWriter) WriteRendered(content string) error {
	return writeFileAtomic(w.path, []byte(normalize(content)))
}

// normalize ensures content ends with exactly one newline.
func normalize(content string) string {
	return strings.TrimRight(content, "\n") + "\n"
}

// writeFileAtomic writes data to a temp file in the destination directory,
// syncs it, and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	// A successful rename leaves nothing to remove.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set temp file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
