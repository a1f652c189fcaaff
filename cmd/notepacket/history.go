// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notepacket/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent copy runs and generated documents",
	RunE:  runHistory,
}

func openJournalStrict(cmd *cobra.Command) (*journal.Store, error) {
	path := filepath.Join(filepath.Dir(configPath(cmd)), journal.DefaultFile)
	return journal.Open(path)
}

func historyOptions(cmd *cobra.Command) journal.QueryOptions {
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	return journal.QueryOptions{Kind: journal.Kind(kind), Limit: limit}
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openJournalStrict(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), historyOptions(cmd))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if entries == nil {
			entries = []journal.Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-6s  %-6s  %s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Kind, e.Status, e.Subject)
		switch e.Kind {
		case journal.KindCopy:
			fmt.Fprintf(w, "  copied=%d missing=%d", e.Copied, e.Missing)
		default:
			if e.OutputPath != "" {
				fmt.Fprintf(w, "  -> %s (%d page(s))", e.OutputPath, e.Pages)
			}
		}
		if e.Message != "" {
			fmt.Fprintf(w, "  [%s]", e.Message)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write the whole journal to a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(args[0])), ".")
	}

	store, err := openJournalStrict(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := historyOptions(cmd)
	switch format {
	case "yaml", "yml":
		err = store.ExportYAML(cmd.Context(), args[0], opts)
	case "json":
		err = store.ExportJSON(cmd.Context(), args[0], opts)
	default:
		return fmt.Errorf("unknown export format %q (want yaml or json)", format)
	}
	if err != nil {
		return err
	}
	logger.Info("exported history to " + args[0])
	return nil
}

func init() {
	historyCmd.PersistentFlags().String("kind", "", "only show entries of this kind: copy, packet, or folder")
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().Bool("json", false, "print JSON")
	historyExportCmd.Flags().String("format", "", "yaml or json (default from the file extension)")

	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
