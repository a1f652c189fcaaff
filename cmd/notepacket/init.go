package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file",
	Long: `Init writes a new prevConfig.json. Without --source and --target it asks
for the two folders; an empty answer keeps the suggested default.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("source", "", "image source folder")
	initCmd.Flags().String("target", "", "copy destination and packet output folder")
	initCmd.Flags().String("template", "", "template PDF")
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath(cmd)
	force, _ := cmd.Flags().GetBool("force")
	if config.Exists(path) && !force {
		return fmt.Errorf("config %s already exists (use --force to replace it)", path)
	}

	source, _ := cmd.Flags().GetString("source")
	target, _ := cmd.Flags().GetString("target")
	template, _ := cmd.Flags().GetString("template")

	cfg := config.Default()
	if source == "" || target == "" {
		if source != "" {
			cfg.SourceDir = source
		}
		if target != "" {
			cfg.TargetDir = target
		}
		answered, err := config.Prompt(os.Stdin, cmd.OutOrStdout(), cfg)
		if err != nil {
			return err
		}
		cfg = answered
	} else {
		cfg.SourceDir, cfg.TargetDir = source, target
	}
	cfg.TemplatePath = template

	if err := config.Save(path, &cfg); err != nil {
		return err
	}
	logger.Info("created config", zap.String("path", path),
		zap.String("source", cfg.SourceDir), zap.String("target", cfg.TargetDir))
	return nil
}
