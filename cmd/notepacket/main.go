// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notepacket CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/applog"
	"github.com/pdiddy/notepacket/internal/config"
	"github.com/pdiddy/notepacket/internal/envfile"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	logger      = zap.NewNop()
	closeLog    = func() error { return nil }
	loggerReady bool
)

func currentLogger() *zap.Logger { return logger }

// rootCmd is the base command for the notepacket CLI.
var rootCmd = &cobra.Command{
	Use:   "notepacket",
	Short: "Copy note images and compose them into PDF packets",
	Long: `notepacket copies selected images out of a source folder and lays them
out two per page on a template PDF. It keeps a list of users, each with a
note title and a list of note numbers, and builds one packet per user.

Settings live in prevConfig.json. Any scalar key can be overridden with a
NOTEPACKET_<KEY> environment variable or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		applied, err := envfile.Load(envFile)
		if err != nil {
			return err
		}

		logFile, _ := cmd.Flags().GetString("log-file")
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, c, err := applog.New(applog.Options{File: logFile, Verbose: verbose})
		if err != nil {
			return err
		}
		logger, closeLog, loggerReady = l, c, true

		logger.Info("program started", zap.String("version", version), zap.String("command", cmd.CommandPath()))
		if len(applied) > 0 {
			logger.Debug("loaded env file", zap.String("file", envFile), zap.Strings("keys", applied))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "config file")
	rootCmd.PersistentFlags().String("log-file", applog.DefaultFile, "activity log file (empty disables it)")
	rootCmd.PersistentFlags().String("env-file", envfile.DefaultFile, "optional dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug messages")
}

func main() {
	defer applog.LogPanic(currentLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if loggerReady {
			logger.Error(err.Error())
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		_ = closeLog()
		os.Exit(1)
	}
	_ = closeLog()
}
