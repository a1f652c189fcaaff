package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/notepacket/internal/layout"
	"github.com/pdiddy/notepacket/pkg/types"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show or change the two-slot page layout",
}

// --- show subcommand ---

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the layout and where each slot lands on the page",
	RunE:  runLayoutShow,
}

func runLayoutShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	page := layout.A4
	if cfg.TemplatePath != "" {
		if c, err := newComposer(cfg); err == nil {
			page = c.PageSize()
		} else {
			logger.Warn("template unreadable, previewing on A4", zap.Error(err))
		}
	}
	printLayout(cmd.OutOrStdout(), cfg.Layout, page)
	return nil
}

func printLayout(w io.Writer, l types.Layout, page layout.Size) {
	fmt.Fprintf(w, "page:      %.2f x %.2f pt\n", page.W, page.H)
	fmt.Fprintf(w, "target:    %g x %g pt\n", l.TargetW, l.TargetH)
	fmt.Fprintf(w, "margins:   h=%g v=%g\n", l.HMargin, l.VMargin)
	fmt.Fprintf(w, "offsets:   slot 1 (%g, %g)  slot 2 (%g, %g)\n", l.XOffset1, l.YOffset1, l.XOffset2, l.YOffset2)
	fmt.Fprintf(w, "cell:      %.2f pt high\n", layout.CellHeight(page, l.VMargin))
	for slot := 0; slot < layout.SlotsPerPage; slot++ {
		r := layout.SlotBox(page, l, slot)
		tl := r.TopLeft(page)
		fmt.Fprintf(w, "slot %d:    pdf x=%.2f y=%.2f  top-left x=%.2f y=%.2f  (%g x %g)\n",
			slot+1, r.X, r.Y, tl.X, tl.Y, r.W, r.H)
	}
	if err := layout.Validate(l); err != nil {
		fmt.Fprintf(w, "warning:   %v\n", err)
	}
}

// --- set subcommand ---

var layoutSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change layout values; only the flags given are updated",
	RunE:  runLayoutSet,
}

// layoutFlags maps flag names to the layout fields they set.
func layoutFlags(l *types.Layout) map[string]*float64 {
	return map[string]*float64{
		"h-margin":  &l.HMargin,
		"v-margin":  &l.VMargin,
		"target-w":  &l.TargetW,
		"target-h":  &l.TargetH,
		"x-offset1": &l.XOffset1,
		"y-offset1": &l.YOffset1,
		"x-offset2": &l.XOffset2,
		"y-offset2": &l.YOffset2,
	}
}

func runLayoutSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	changed := 0
	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		cfg.Layout = types.DefaultLayout()
		changed++
	}
	for name, field := range layoutFlags(&cfg.Layout) {
		if !cmd.Flags().Changed(name) {
			continue
		}
		*field, _ = cmd.Flags().GetFloat64(name)
		changed++
	}
	if changed == 0 {
		return fmt.Errorf("no layout values given")
	}
	if err := layout.Validate(cfg.Layout); err != nil {
		return err
	}
	if err := saveConfig(cmd, cfg); err != nil {
		return err
	}
	logger.Info("layout updated")
	printLayout(cmd.OutOrStdout(), cfg.Layout, layout.A4)
	return nil
}

func init() {
	for name := range layoutFlags(&types.Layout{}) {
		layoutSetCmd.Flags().Float64(name, 0, "layout value in points")
	}
	layoutSetCmd.Flags().Bool("reset", false, "restore the default layout")

	layoutCmd.AddCommand(layoutShowCmd, layoutSetCmd)
	rootCmd.AddCommand(layoutCmd)
}
