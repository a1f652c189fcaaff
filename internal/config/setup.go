// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/notepacket/pkg/types"
)

// Prompt asks for the source and target folders on in, offering the
// values in defaults. An empty answer keeps the default. It returns the
// resulting config without saving it.
func Prompt(in io.Reader, out io.Writer, defaults types.Config) (types.Config, error) {
	cfg := defaults
	fmt.Fprintln(out, "No configuration found. Choose the source and target folders.")

	sc := bufio.NewScanner(in)
	ask := func(label, def string) (string, error) {
		fmt.Fprintf(out, "%s [%s]: ", label, def)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
			}
			return def, nil
		}
		answer := strings.TrimSpace(sc.Text())
		if answer == "" {
			return def, nil
		}
		return answer, nil
	}

	var err error
	if cfg.SourceDir, err = ask("Source folder", defaults.SourceDir); err != nil {
		return types.Config{}, err
	}
	if cfg.TargetDir, err = ask("Target folder", defaults.TargetDir); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
