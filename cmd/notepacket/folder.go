package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notepacket/internal/compose"
	"github.com/pdiddy/notepacket/internal/journal"
)

var folderCmd = &cobra.Command{
	Use:   "folder [dir]",
	Short: "Compose every image in a folder into images.pdf",
	Long: `Folder collects the images in dir (default: the target folder) in natural
order and writes them to images.pdf in the same folder. By default images
go two per page on the template; --grid uses a plain 2x3 grid instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFolder,
}

func init() {
	folderCmd.Flags().Bool("grid", false, "use a 2x3 grid without a template")

	rootCmd.AddCommand(folderCmd)
}

func runFolder(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir := cfg.TargetDir
	if len(args) == 1 {
		dir = args[0]
	}

	grid, _ := cmd.Flags().GetBool("grid")
	opts := compose.FolderOptions{Grid: grid}
	if !grid {
		if opts.Composer, err = newComposer(cfg); err != nil {
			return err
		}
	}

	j := openJournal(cmd)
	defer closeJournal(j)

	res, err := compose.ComposeFolder(cmd.Context(), dir, opts, logger)
	entry := journal.Entry{
		Kind:       journal.KindFolder,
		Subject:    dir,
		OutputPath: res.Path,
		Pages:      res.Pages,
		Missing:    len(res.Skipped),
		Status:     journal.StatusOK,
	}
	if err != nil {
		entry.Status = journal.StatusFailed
		entry.Message = err.Error()
	}
	record(cmd.Context(), j, entry)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d page(s), %d skipped)\n", res.Path, res.Pages, len(res.Skipped))
	return nil
}
