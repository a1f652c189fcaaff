package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notepacket/internal/roster"
)

var composeCmd = &cobra.Command{
	Use:   "compose [users...]",
	Short: "Build one PDF packet per user",
	Long: `Compose resolves each user's note numbers to images in the source folder,
lays them out two per page on the template, and writes
<target>/<name>/<name>_<title>.pdf. Existing files are never overwritten; a
numeric suffix is added instead. Users with no images are skipped.`,
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().Bool("all", false, "compose packets for every user")

	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if len(args) == 0 && !all {
		return fmt.Errorf("name one or more users, or pass --all")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := loadRoster(cfg)
	if r.Len() == 0 {
		return roster.ErrNoUsers
	}

	users := r.Users()
	if !all {
		if users, err = r.Select(args); err != nil {
			return err
		}
	}

	result, err := composePackets(cmd.Context(), cmd, cfg, users, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d packet(s) failed", result.Failed)
	}
	return nil
}
