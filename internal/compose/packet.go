// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/copier"
	"github.com/pdiddy/notepacket/internal/imageprep"
	"github.com/pdiddy/notepacket/pkg/types"
)

// Outcome is the per-user result of a packet batch. Exactly one of Err,
// Skipped, or a non-empty Result.Path describes what happened.
type Outcome struct {
	User    string
	Result  Result
	Missing []string
	Skipped bool
	Err     error
}

// BatchResult holds the outcome of a packet batch.
type BatchResult struct {
	Generated int
	Skipped   int
	Failed    int

	Outcomes []Outcome
}

// Total returns the number of users processed.
func (r BatchResult) Total() int {
	return r.Generated + r.Skipped + r.Failed
}

// HasFailures reports whether any packet failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// SafeName replaces path separators so a user name can be used as a single
// path element. A name made only of dots becomes underscores so it cannot
// name the current or parent directory.
func SafeName(s string) string {
	s = strings.NewReplacer("/", "_", `\`, "_").Replace(strings.TrimSpace(s))
	if s != "" && strings.Trim(s, ".") == "" {
		s = strings.Repeat("_", len(s))
	}
	return s
}

// PacketPath returns the preferred output path for u under targetDir:
// <target>/<name>/<name>_<title>.pdf, or <name>.pdf without a title.
func PacketPath(targetDir string, u types.User) string {
	name := SafeName(u.Name)
	file := name + ".pdf"
	if title := SafeName(u.NoteTitle); title != "" {
		file = name + "_" + title + ".pdf"
	}
	return filepath.Join(targetDir, name, file)
}

// ResolveImages maps note numbers to image files in sourceDir. A .jpg is
// preferred when several images share the base name. Numbers with no image
// are returned in missing.
func ResolveImages(ix copier.Index, sourceDir string, numbers []string) (paths, missing []string) {
	for _, n := range numbers {
		file, ok := ix.LookupPreferred(n, imageprep.IsImage, ".jpg", ".jpeg")
		if !ok {
			missing = append(missing, n)
			continue
		}
		paths = append(paths, filepath.Join(sourceDir, file))
	}
	return paths, missing
}

// ComposePacket builds one user's packet from images in sourceDir.
func (c *Composer) ComposePacket(ctx context.Context, ix copier.Index, u types.User, sourceDir, targetDir string) Outcome {
	out := Outcome{User: u.Name}
	paths, missing := ResolveImages(ix, sourceDir, u.NoteNumberList())
	out.Missing = missing
	for _, n := range missing {
		c.logger.Warn("not found: "+n+".*", zap.String("user", u.Name), zap.String("source", sourceDir))
	}

	res, err := c.Compose(ctx, paths, PacketPath(targetDir, u))
	out.Result = res
	switch {
	case errors.Is(err, ErrNoImages):
		c.logger.Warn("skipped: "+u.Name+" (no images)")
		out.Skipped = true
	case err != nil:
		c.logger.Error("packet failed: "+u.Name, zap.Error(err))
		out.Err = err
	}
	return out
}

// ComposeBatch builds packets for every user in order. A failing user does
// not stop the batch; cancellation does. The summary line is written to w.
func (c *Composer) ComposeBatch(ctx context.Context, users []types.User, sourceDir, targetDir string, w io.Writer) (BatchResult, error) {
	var result BatchResult

	ix, err := copier.BuildIndex(sourceDir)
	if err != nil {
		return result, err
	}

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		out := c.ComposePacket(ctx, ix, u, sourceDir, targetDir)
		if errors.Is(out.Err, context.Canceled) || errors.Is(out.Err, context.DeadlineExceeded) {
			return result, out.Err
		}
		switch {
		case out.Err != nil:
			result.Failed++
		case out.Skipped:
			result.Skipped++
		default:
			result.Generated++
		}
		result.Outcomes = append(result.Outcomes, out)
	}

	fmt.Fprintf(w, "\nBatch summary: %d generated, %d skipped, %d failed (total: %d)\n",
		result.Generated, result.Skipped, result.Failed, result.Total())
	return result, nil
}
