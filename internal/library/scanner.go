// Package library keeps the catalog in sync with a directory of transcript
// files.
package library

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"segment-aligner/internal/transcript"
)

// File is a transcript file found during scanning.
type File struct {
	RelPath string // relative to the scan root, slash-separated
	AbsPath string
	Format  transcript.Format
}

// Scan walks root and returns every transcript file below it. Hidden files
// and directories are skipped.
func Scan(ctx context.Context, root string) ([]File, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library root %s: %w", root, err)
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		format, ok := transcriptFormat(path)
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}

		files = append(files, File{
			RelPath: filepath.ToSlash(relPath),
			AbsPath: path,
			Format:  format,
		})
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to scan library %s: %w", root, err)
	}

	return files, nil
}

// IsTranscript reports whether path names a visible transcript file.
func IsTranscript(path string) bool {
	if isHidden(filepath.Base(path)) {
		return false
	}
	_, ok := transcriptFormat(path)
	return ok
}

func transcriptFormat(path string) (transcript.Format, bool) {
	format, err := transcript.FormatFromPath(path)
	return format, err == nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
