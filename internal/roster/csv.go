// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pdiddy/notepacket/pkg/types"
)

// readCSV reads a CSV laid out like the spreadsheet import: a header row of
// any wording, then the user columns in fixed order.
func readCSV(path string) ([]types.User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := gocsv.LazyCSVReader(f)
	if cr, ok := r.(*csv.Reader); ok {
		cr.FieldsPerRecord = -1
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	return fromRows(rows), nil
}

func writeCSV(path string, users []types.User) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if users == nil {
		users = []types.User{}
	}
	if err := gocsv.MarshalFile(&users, f); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV: %w", err)
	}
	return f.Close()
}
