// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package envfile loads an optional dotenv file into the process
// environment before configuration is read, so NOTEPACKET_* overrides can
// live next to the config file instead of in the shell profile.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultFile is the dotenv file looked up in the working directory.
const DefaultFile = ".env"

// Load reads path and exports every variable that is not already set.
// A missing file is not an error; Load returns no keys. Variables already
// present in the environment win over the file. The applied keys are
// returned sorted.
func Load(path string) ([]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	var applied []string
	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return applied, fmt.Errorf("setting %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	sort.Strings(applied)
	return applied, nil
}
