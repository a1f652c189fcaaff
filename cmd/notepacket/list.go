package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notepacket/internal/copier"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the target (or source) folder",
	RunE:  runList,
}

func init() {
	listCmd.Flags().Bool("source", false, "list the source folder instead of the target")
	listCmd.Flags().Bool("images", false, "only list image files")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir := cfg.TargetDir
	if src, _ := cmd.Flags().GetBool("source"); src {
		dir = cfg.SourceDir
	}

	imagesOnly, _ := cmd.Flags().GetBool("images")
	var names []string
	if imagesOnly {
		names, err = copier.ListImages(dir)
	} else {
		names, err = copier.List(dir)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s:\n", dir)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", filepath.Base(n))
	}
	fmt.Fprintf(w, "Total: %d file(s)\n", len(names))
	return nil
}
