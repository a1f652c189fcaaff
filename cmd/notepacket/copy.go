package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notepacket/internal/copier"
	"github.com/pdiddy/notepacket/internal/journal"
	"github.com/pdiddy/notepacket/pkg/types"
)

var copyCmd = &cobra.Command{
	Use:   "copy [names...]",
	Short: "Copy images by base name from the source to the target folder",
	Long: `Copy looks up each requested base name (file name without extension) in
the source folder and copies the match into the target folder, creating it
if needed. Names may be given as arguments or as one comma-separated list.
Without names, the last request saved in the config is repeated.

After a successful run the request and both folders are saved back to the
config.`,
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().String("source", "", "source folder (default from config)")
	copyCmd.Flags().String("target", "", "target folder (default from config)")

	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	request := strings.Join(args, ",")
	if strings.TrimSpace(request) == "" {
		request = cfg.FileNames
	}
	names := types.SplitList(request)
	if len(names) == 0 {
		return fmt.Errorf("provide one or more file names (e.g. 101,102)")
	}

	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = cfg.SourceDir
	}
	target, _ := cmd.Flags().GetString("target")
	if target == "" {
		target = cfg.TargetDir
	}

	result, err := copier.Copy(cmd.Context(), names, source, target, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nCopy summary: %d copied, %d missing, %d failed (total: %d)\n",
		result.Copied, result.Missing, result.Failed, result.Total())

	j := openJournal(cmd)
	defer closeJournal(j)
	entry := journal.Entry{
		Kind:    journal.KindCopy,
		Subject: source,
		Copied:  result.Copied,
		Missing: result.Missing,
		Status:  journal.StatusOK,
	}
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	entry.OutputPath = target
	if result.HasFailures() {
		entry.Status = journal.StatusFailed
		entry.Message = fmt.Sprintf("%d file(s) failed", result.Failed)
	}
	record(cmd.Context(), j, entry)

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to copy", result.Failed)
	}

	cfg.FileNames = strings.Join(names, ", ")
	cfg.SourceDir = source
	cfg.TargetDir = target
	return saveConfig(cmd, cfg)
}
