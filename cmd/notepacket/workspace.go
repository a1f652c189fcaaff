package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/compose"
	"github.com/pdiddy/notepacket/internal/config"
	"github.com/pdiddy/notepacket/internal/journal"
	"github.com/pdiddy/notepacket/pkg/types"
)

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFile
	}
	return path
}

// loadConfig reads the config file. When it does not exist yet and stdin is
// a terminal, the user is asked for the two folders and the result is
// saved before returning.
func loadConfig(cmd *cobra.Command) (*types.Config, error) {
	path := configPath(cmd)
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("%w; run 'notepacket init' first", err)
	}

	answered, err := config.Prompt(os.Stdin, cmd.OutOrStdout(), config.Default())
	if err != nil {
		return nil, err
	}
	if err := config.Save(path, &answered); err != nil {
		return nil, err
	}
	logger.Info("created config", zap.String("path", path))
	return &answered, nil
}

func saveConfig(cmd *cobra.Command, cfg *types.Config) error {
	path := configPath(cmd)
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Debug("saved config", zap.String("path", path))
	return nil
}

// openJournal opens the run journal next to the config file. The journal
// is optional: on failure it logs a warning and returns nil.
func openJournal(cmd *cobra.Command) *journal.Store {
	path := filepath.Join(filepath.Dir(configPath(cmd)), journal.DefaultFile)
	j, err := journal.Open(path)
	if err != nil {
		logger.Warn("journal unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return j
}

func closeJournal(j *journal.Store) {
	if j != nil {
		_ = j.Close()
	}
}

func record(ctx context.Context, j *journal.Store, e journal.Entry) {
	if j == nil {
		return
	}
	if _, err := j.Record(context.WithoutCancel(ctx), e); err != nil {
		logger.Warn("journal write failed", zap.Error(err))
	}
}

func newComposer(cfg *types.Config) (*compose.Composer, error) {
	return compose.New(cfg.TemplatePath, cfg.Layout, logger)
}

// composePackets builds a packet per user and journals every outcome.
func composePackets(ctx context.Context, cmd *cobra.Command, cfg *types.Config, users []types.User, w io.Writer) (compose.BatchResult, error) {
	c, err := newComposer(cfg)
	if err != nil {
		return compose.BatchResult{}, err
	}

	j := openJournal(cmd)
	defer closeJournal(j)

	result, err := c.ComposeBatch(ctx, users, cfg.SourceDir, cfg.TargetDir, w)
	for _, out := range result.Outcomes {
		e := journal.Entry{
			Kind:       journal.KindPacket,
			Subject:    out.User,
			OutputPath: out.Result.Path,
			Pages:      out.Result.Pages,
			Missing:    len(out.Missing) + len(out.Result.Skipped),
			Status:     journal.StatusOK,
		}
		switch {
		case out.Err != nil:
			e.Status = journal.StatusFailed
			e.Message = out.Err.Error()
		case out.Skipped:
			e.Message = "no images"
		}
		record(ctx, j, e)
	}
	return result, err
}
