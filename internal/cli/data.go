package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wetbench/labbook/internal/collector"
)

func newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Collect and use raw data files",
		Long: `Work with the raw data under data/: pull files in from instruments
and USB drives as configured in .labbookrc, and symlink them into
experiment directories for analysis.`,
	}
	cmd.AddCommand(newDataLsCmd())
	cmd.AddCommand(newDataSyncCmd())
	cmd.AddCommand(newDataLinkCmd())
	cmd.AddCommand(newDataHistoryCmd())
	return cmd
}

func newDataLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [slug]",
		Short: "List data files",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDataLs,
	}
}

func runDataLs(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	paths, err := w.ListData(slugArg(args))
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func newDataSyncCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "sync [dest...]",
		Short: "Pull data in from configured sources",
		Long: `Run the data sources configured in .labbookrc, copying new files into
data/. Destinations given as arguments limit the sync to those
sources. Each run is recorded in the sync history.

Examples:
  labbook data sync
  labbook data sync sequencing -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataSync(args, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Echo the commands being run")
	return cmd
}

func runDataSync(dests []string, verbose bool) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	run, err := collector.SyncAll(w, dests, os.Stdout, verbose)
	if run != nil {
		for _, src := range run.Sources {
			if src.Status == "ok" {
				fmt.Printf("%s %s\n", StyleOK.Render("✓"), src.Dest)
			} else {
				fmt.Printf("%s %s: %s\n", StyleFailed.Render("✗"), src.Dest, src.Error)
			}
		}
	}
	return err
}

func newDataLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <slug> [dir]",
		Short: "Symlink a data file into a directory",
		Long: `Create a symlink to the data file matching the slug, in the given
directory or the current one. Run from an experiment directory this
makes the raw data available to analysis scripts without copying it.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDataLink,
	}
}

func runDataLink(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	target, err := pickPath(w.PickData, args[0])
	if err != nil {
		return err
	}

	dir := ""
	if len(args) > 1 {
		dir = args[1]
	} else {
		dir, err = GetWorkingDir()
		if err != nil {
			return err
		}
	}

	link, err := w.LinkFile(target, dir)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s -> %s\n", StyleOK.Render("✓"), filepath.Base(link), target)
	return nil
}

func newDataHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past data syncs",
		Args:  cobra.NoArgs,
		RunE:  runDataHistory,
	}
}

func runDataHistory(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	runs, err := collector.History(w)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(StyleDim.Render("No syncs recorded."))
		return nil
	}

	for _, run := range runs {
		when := run.StartedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("%s  %s\n", StyleHighlight.Render(when), StyleDim.Render(run.ID))
		for _, src := range run.Sources {
			if src.Status == "ok" {
				fmt.Printf("  %s %s\n", StyleOK.Render("✓"), src.Dest)
			} else {
				fmt.Printf("  %s %s: %s\n", StyleFailed.Render("✗"), src.Dest, src.Error)
			}
		}
	}
	return nil
}
