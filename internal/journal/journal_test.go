package journal

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", DefaultFile))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	entries := []Entry{
		{Kind: KindCopy, Subject: "source", Copied: 3, Missing: 1},
		{Kind: KindPacket, Subject: "Alice", OutputPath: "/out/Alice/Alice_w1.pdf", Pages: 2},
		{Kind: KindPacket, Subject: "Bob", Status: StatusFailed, Message: "template unreadable"},
		{Kind: KindFolder, Subject: "/out", OutputPath: "/out/images.pdf", Pages: 4},
	}
	for _, e := range entries {
		if _, err := s.Record(context.Background(), e); err != nil {
			t.Fatal(err)
		}
	}
}

// --- tests ---

func TestOpenCreatesSchemaTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestRecordDefaults(t *testing.T) {
	s := testStore(t)
	id, err := s.Record(context.Background(), Entry{Kind: KindCopy, Subject: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}

	entries, err := s.List(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Status != StatusOK {
		t.Errorf("status = %q, want ok", e.Status)
	}
	if e.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestList(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	tests := []struct {
		name     string
		opts     QueryOptions
		subjects []string
	}{
		{"all newest first", QueryOptions{}, []string{"/out", "Bob", "Alice", "source"}},
		{"by kind", QueryOptions{Kind: KindPacket}, []string{"Bob", "Alice"}},
		{"limit", QueryOptions{Limit: 2}, []string{"/out", "Bob"}},
		{"unknown kind", QueryOptions{Kind: "other"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := s.List(context.Background(), tc.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != len(tc.subjects) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tc.subjects))
			}
			for i, e := range entries {
				if e.Subject != tc.subjects[i] {
					t.Errorf("entry %d subject = %q, want %q", i, e.Subject, tc.subjects[i])
				}
			}
		})
	}
}

func TestListRoundTripsFields(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	entries, err := s.List(context.Background(), QueryOptions{Kind: KindPacket})
	if err != nil {
		t.Fatal(err)
	}
	bob, alice := entries[0], entries[1]
	if bob.Status != StatusFailed || bob.Message != "template unreadable" {
		t.Errorf("bob = %+v", bob)
	}
	if alice.OutputPath != "/out/Alice/Alice_w1.pdf" || alice.Pages != 2 {
		t.Errorf("alice = %+v", alice)
	}
	if !alice.CreatedAt.Before(bob.CreatedAt) {
		t.Errorf("created_at order: alice %v, bob %v", alice.CreatedAt, bob.CreatedAt)
	}
}

func TestExport(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "history.yaml")
	if err := s.ExportYAML(context.Background(), yamlPath, QueryOptions{Limit: 1}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []Entry
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatal(err)
	}
	if len(fromYAML) != 4 {
		t.Errorf("yaml export has %d entries, want 4 (limit ignored)", len(fromYAML))
	}

	jsonPath := filepath.Join(dir, "history.json")
	if err := s.ExportJSON(context.Background(), jsonPath, QueryOptions{Kind: KindFolder}); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []Entry
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatal(err)
	}
	if len(fromJSON) != 1 || fromJSON[0].OutputPath != "/out/images.pdf" {
		t.Errorf("json export = %+v", fromJSON)
	}
}

func TestExportEmpty(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(t.TempDir(), "history.json")
	if err := s.ExportJSON(context.Background(), path, QueryOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("got %q, want []", data)
	}
}
