// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notepacket/internal/applog"
	"github.com/pdiddy/notepacket/internal/roster"
	"github.com/pdiddy/notepacket/internal/ui"
	"github.com/pdiddy/notepacket/pkg/types"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the user list (interactive table without a subcommand)",
	Long: `Users manages the list of users packets are built for. Without a
subcommand it opens an interactive table: space checks a row, a checks all,
n adds, e edits, d deletes checked rows, s saves, p composes packets for the
checked users, and q quits.`,
	RunE: runUsersTable,
}

// --- add subcommand ---

var usersAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersAdd,
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	numbers, _ := cmd.Flags().GetString("numbers")

	return withRoster(cmd, func(r *roster.Roster) error {
		if err := r.Add(types.User{Name: args[0], NoteTitle: title, NoteNumbers: numbers}); err != nil {
			return err
		}
		logger.Info("added user: " + args[0])
		return nil
	})
}

// --- edit subcommand ---

var usersEditCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Change a user's name, title, or note numbers",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersEdit,
}

func runUsersEdit(cmd *cobra.Command, args []string) error {
	return withRoster(cmd, func(r *roster.Roster) error {
		u, _, ok := r.Find(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", roster.ErrUnknownUser, args[0])
		}
		if cmd.Flags().Changed("name") {
			u.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("title") {
			u.NoteTitle, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("numbers") {
			u.NoteNumbers, _ = cmd.Flags().GetString("numbers")
		}
		if err := r.Update(args[0], u); err != nil {
			return err
		}
		logger.Info("updated user: " + u.Name)
		return nil
	})
}

// --- rm subcommand ---

var usersRmCmd = &cobra.Command{
	Use:   "rm NAME...",
	Short: "Delete users",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUsersRm,
}

func runUsersRm(cmd *cobra.Command, args []string) error {
	return withRoster(cmd, func(r *roster.Roster) error {
		n := r.Delete(args...)
		if n == 0 {
			return fmt.Errorf("%w: %v", roster.ErrUnknownUser, args)
		}
		logger.Info(fmt.Sprintf("deleted %d user(s)", n))
		return nil
	})
}

// --- list subcommand ---

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the user list",
	RunE:  runUsersList,
}

func runUsersList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return printUsers(cmd.OutOrStdout(), cfg.Users, format)
}

func printUsers(w io.Writer, users []types.User, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(users, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		data, err := yaml.Marshal(users)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
	case "table", "":
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("NAME", "NOTE TITLE", "NOTE NUMBERS")
		for _, u := range users {
			t.Row(u.Name, u.NoteTitle, u.NoteNumbers)
		}
		fmt.Fprintln(w, t.Render())
		fmt.Fprintf(w, "Total: %d user(s)\n", len(users))
	default:
		return fmt.Errorf("unknown format %q (want table, yaml, or json)", format)
	}
	return nil
}

// --- import subcommand ---

var usersImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import users from .xlsx, .csv, .yaml, or .json",
	Long: `Import reads users from a spreadsheet or data file. Tabular files have a
header row followed by name, note title, and note numbers columns; rows
without a name are skipped. In merge mode (default) only users whose name is
new are appended; replace mode discards the current list.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersImport,
}

func runUsersImport(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := roster.ParseApplyMode(modeFlag)
	if err != nil {
		return err
	}
	imported, err := roster.Import(args[0])
	if err != nil {
		return err
	}

	return withRoster(cmd, func(r *roster.Roster) error {
		added := r.Apply(imported, mode)
		logger.Info(fmt.Sprintf("imported %d user(s) from %s", added, args[0]),
			zap.String("mode", mode.String()), zap.Int("rows", len(imported)))
		return nil
	})
}

// --- export subcommand ---

var usersExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export users to .xlsx, .csv, .yaml, or .json",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersExport,
}

func runUsersExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := roster.Export(args[0], cfg.Users); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("exported %d user(s) to %s", len(cfg.Users), args[0]))
	return nil
}

// --- save subcommand ---

var usersSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Rewrite the user list, trimming fields and dropping unnamed or duplicate users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRoster(cmd, func(r *roster.Roster) error {
			logger.Info(fmt.Sprintf("saved %d user(s)", r.Len()))
			return nil
		})
	},
}

// withRoster loads the config, applies fn to its users, and saves the
// config when fn succeeds.
func withRoster(cmd *cobra.Command, fn func(r *roster.Roster) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r := loadRoster(cfg)
	if err := fn(r); err != nil {
		return err
	}
	cfg.Users = r.Users()
	return saveConfig(cmd, cfg)
}

// runUsersTable opens the interactive table. Log output goes only to the
// log file while the table owns the terminal.
func runUsersTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, closeQuiet, err := applog.New(applog.Options{File: logFile, Console: io.Discard, Verbose: verbose})
	if err != nil {
		return err
	}
	prev := logger
	logger = quiet
	defer func() {
		logger = prev
		_ = closeQuiet()
	}()

	opts := ui.Options{
		Save: func(users []types.User) error {
			cfg.Users = users
			if err := saveConfig(cmd, cfg); err != nil {
				return err
			}
			logger.Info(fmt.Sprintf("saved %d user(s)", len(users)))
			return nil
		},
		Compose: func(users []types.User) (string, error) {
			res, err := composePackets(cmd.Context(), cmd, cfg, users, io.Discard)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d generated, %d skipped, %d failed", res.Generated, res.Skipped, res.Failed), nil
		},
	}
	return ui.Run(loadRoster(cfg), opts)
}

// loadRoster builds the roster from the config, logging users that share a
// name with an earlier one or have no name at all.
func loadRoster(cfg *types.Config) *roster.Roster {
	r, dropped := roster.Load(cfg.Users)
	for _, u := range dropped {
		logger.Warn("ignoring duplicate or unnamed user: "+u.Name,
			zap.String("title", u.NoteTitle), zap.String("numbers", u.NoteNumbers))
	}
	return r
}

func init() {
	usersAddCmd.Flags().String("title", "", "note title")
	usersAddCmd.Flags().String("numbers", "", "comma-separated note numbers")

	usersEditCmd.Flags().String("name", "", "new name")
	usersEditCmd.Flags().String("title", "", "note title")
	usersEditCmd.Flags().String("numbers", "", "comma-separated note numbers")

	usersListCmd.Flags().String("format", "table", "output format: table, yaml, or json")
	usersImportCmd.Flags().String("mode", "merge", "merge or replace")

	usersCmd.AddCommand(usersAddCmd, usersEditCmd, usersRmCmd, usersListCmd,
		usersImportCmd, usersExportCmd, usersSaveCmd)
	rootCmd.AddCommand(usersCmd)
}
