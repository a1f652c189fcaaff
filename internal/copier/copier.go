// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package copier copies requested images from a source folder into a
// target folder. Requests name files by base name only; the extension is
// whatever the source folder holds.
package copier

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// BatchResult holds the outcome of a copy run.
type BatchResult struct {
	Copied  int
	Missing int
	Failed  int

	// Files lists the copied file names in request order.
	Files []string

	// NotFound lists the requested base names with no match.
	NotFound []string
}

// Total returns the number of requested names processed.
func (r BatchResult) Total() int {
	return r.Copied + r.Missing + r.Failed
}

// HasFailures reports whether any copy failed. Missing names are not failures.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Copy copies every file in sourceDir whose base name matches one of names
// into targetDir, creating targetDir first if needed. Missing names are
// logged and skipped; per-file errors are logged and counted. The returned
// error is reserved for problems that stop the whole run.
func Copy(ctx context.Context, names []string, sourceDir, targetDir string, logger *zap.Logger) (BatchResult, error) {
	var result BatchResult

	index, err := BuildIndex(sourceDir)
	if err != nil {
		return result, err
	}

	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return result, fmt.Errorf("creating target directory %s: %w", targetDir, err)
		}
		logger.Info("created target directory", zap.String("dir", targetDir))
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		file, ok := index.Lookup(name)
		if !ok {
			logger.Warn("not found: "+name+".*", zap.String("source", sourceDir))
			result.Missing++
			result.NotFound = append(result.NotFound, name)
			continue
		}
		src := filepath.Join(sourceDir, file)
		dst := filepath.Join(targetDir, file)
		if err := copyFile(src, dst); err != nil {
			logger.Error("copy failed", zap.String("file", file), zap.Error(err))
			result.Failed++
			continue
		}
		logger.Info("copied: "+file, zap.String("target", targetDir))
		result.Copied++
		result.Files = append(result.Files, file)
	}
	return result, nil
}

// copyFile copies src to dst through a temp file in dst's directory and
// carries over the permission bits and modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".copy-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, in)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing copy: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting modification time: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
