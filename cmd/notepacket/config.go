package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the configuration after defaults and NOTEPACKET_*
environment overrides have been applied.`,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if only, _ := cmd.Flags().GetBool("path"); only {
		fmt.Fprintln(cmd.OutOrStdout(), configPath(cmd))
		return nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

// --- set subcommand ---

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set source_dir, target_dir, template_dir, or file_names",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func configFields(cfg *types.Config) map[string]*string {
	return map[string]*string{
		"source_dir":   &cfg.SourceDir,
		"target_dir":   &cfg.TargetDir,
		"template_dir": &cfg.TemplatePath,
		"file_names":   &cfg.FileNames,
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	key := strings.ToLower(args[0])
	field, ok := configFields(cfg)[key]
	if !ok {
		return fmt.Errorf("unknown key %q (use 'layout set' for layout values)", args[0])
	}
	*field = args[1]
	if err := saveConfig(cmd, cfg); err != nil {
		return err
	}
	logger.Info("config updated", zap.String("key", key), zap.String("value", args[1]))
	return nil
}

func init() {
	configCmd.Flags().Bool("path", false, "only print the config file path")

	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
