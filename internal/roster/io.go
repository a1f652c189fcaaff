// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notepacket/pkg/types"
)

var (
	// ErrNoUsers is returned when an import file holds no usable rows.
	ErrNoUsers = errors.New("no user rows found")

	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported roster format")
)

// Header names the three columns of every tabular format.
var Header = []string{"name", "note_title", "note_numbers"}

// Format identifies a roster file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf maps a file extension to its format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Import reads users from path. Users without a name are dropped; a file
// with no named users yields ErrNoUsers.
func Import(path string) ([]types.User, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var users []types.User
	switch format {
	case FormatXLSX:
		users, err = readXLSX(path)
	case FormatCSV:
		users, err = readCSV(path)
	case FormatYAML:
		users, err = readStructured(path, yaml.Unmarshal)
	case FormatJSON:
		users, err = readStructured(path, json.Unmarshal)
	}
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", filepath.Base(path), err)
	}

	users = compact(users)
	if len(users) == 0 {
		return nil, fmt.Errorf("importing %s: %w", filepath.Base(path), ErrNoUsers)
	}
	return users, nil
}

// Export writes users to path in the format implied by its extension.
func Export(path string, users []types.User) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatXLSX:
		err = writeXLSX(path, users)
	case FormatCSV:
		err = writeCSV(path, users)
	case FormatYAML:
		err = writeStructured(path, users, yaml.Marshal)
	case FormatJSON:
		err = writeStructured(path, users, func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		})
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readStructured(path string, unmarshal func([]byte, any) error) ([]types.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var users []types.User
	if err := unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return users, nil
}

func writeStructured(path string, users []types.User, marshal func(any) ([]byte, error)) error {
	if users == nil {
		users = []types.User{}
	}
	data, err := marshal(users)
	if err != nil {
		return fmt.Errorf("marshaling: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// fromRows converts spreadsheet rows to users. The first row is a header.
// Short rows are padded with empty cells.
func fromRows(rows [][]string) []types.User {
	if len(rows) <= 1 {
		return nil
	}
	users := make([]types.User, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(i int) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		}
		users = append(users, types.User{Name: cell(0), NoteTitle: cell(1), NoteNumbers: cell(2)})
	}
	return users
}

// compact trims every user and drops the ones without a name.
func compact(users []types.User) []types.User {
	out := users[:0]
	for _, u := range users {
		u = u.Normalize()
		if u.Name != "" {
			out = append(out, u)
		}
	}
	return out
}
