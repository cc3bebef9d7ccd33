package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wetbench/labbook/internal/watcher"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Work with notebook experiments",
		Long: `Work with the dated experiment directories under notebook/. Each
experiment is a directory like 20171210_large_step holding a notes.rst
file plus whatever figures and scripts belong to it.`,
	}
	cmd.AddCommand(newNoteNewCmd())
	cmd.AddCommand(newNoteEditCmd())
	cmd.AddCommand(newNoteOpenCmd())
	cmd.AddCommand(newNoteDirectoryCmd())
	cmd.AddCommand(newNoteLsCmd())
	cmd.AddCommand(newNoteBuildCmd())
	cmd.AddCommand(newNoteBrowseCmd())
	return cmd
}

func newNoteNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <title>",
		Short: "Start a new experiment",
		Long: `Create a dated experiment directory named after the title, seed its
notes.rst with the title, and open it in the editor.

Examples:
  labbook new "Test gel purity"
  labbook note new optimize_pcr`,
		Args: cobra.MinimumNArgs(1),
		RunE: runNoteNew,
	}
}

func runNoteNew(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	expt, err := w.NewExperiment(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("%s Created %s\n", StyleOK.Render("✓"), StyleID.Render(expt.ID()))
	return w.LaunchEditor(expt.NotePath())
}

func newNoteEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [slug]",
		Short: "Open an experiment's notes in the editor",
		Long: `Open the notes.rst of the experiment matching the slug in the
configured editor. Without a slug the most recent experiment is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNoteEdit,
	}
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	expt, err := pickExperiment(w, slugArg(args))
	if err != nil {
		return err
	}
	return w.LaunchEditor(expt.NotePath())
}

func newNoteOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [slug]",
		Short: "Open a terminal in an experiment's directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNoteOpen,
	}
}

func runNoteOpen(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	expt, err := pickExperiment(w, slugArg(args))
	if err != nil {
		return err
	}
	return w.LaunchTerminal(expt.Dir())
}

func newNoteDirectoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "directory [slug]",
		Short: "Print an experiment's directory path",
		Long: `Print the absolute path of the experiment matching the slug, for use
in command substitution:

  cd $(labbook note directory twist)`,
		Aliases: []string{"dir"},
		Args:    cobra.MaximumNArgs(1),
		RunE:    runNoteDirectory,
	}
}

func runNoteDirectory(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	expt, err := pickExperiment(w, slugArg(args))
	if err != nil {
		return err
	}
	fmt.Println(expt.Dir())
	return nil
}

func newNoteLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [slug]",
		Short: "List experiments, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNoteLs,
	}
}

func runNoteLs(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	expts, err := w.ListExperiments(slugArg(args))
	if err != nil {
		return err
	}
	for _, e := range expts {
		title := e.Title()
		if title != "" {
			fmt.Printf("%s  %s\n", StyleID.Render(e.ID()), StyleDim.Render(title))
		} else {
			fmt.Println(StyleID.Render(e.ID()))
		}
	}
	return nil
}

func newNoteBuildCmd() *cobra.Command {
	var force bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Rebuild the notebook's HTML",
		Long: `Run the Sphinx build in the notebook directory. With --force the
build directory is cleaned first. With --watch the build reruns
whenever a source file changes, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNoteBuild(force, watch)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Clean before building")
	cmd.Flags().BoolVar(&watch, "watch", false, "Rebuild on source changes")
	return cmd
}

func runNoteBuild(force, watch bool) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	if err := w.BuildNotebook(force); err != nil {
		if !watch {
			return err
		}
		// Keep watching; the next rebuild may succeed once the source
		// is fixed.
		fmt.Fprintf(os.Stderr, "%s %v\n", StyleWarning.Render("warning:"), err)
	}
	if !watch {
		return nil
	}
	return watchAndRebuild(w)
}

func watchAndRebuild(w workspaceBuilder) error {
	wtch, err := watcher.New(500 * time.Millisecond)
	if err != nil {
		return err
	}
	defer wtch.Stop()

	if err := wtch.WatchNotebook(w.NotebookDir()); err != nil {
		return err
	}
	wtch.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	fmt.Println(StyleDim.Render("Watching for changes; Ctrl-C to stop."))
	for {
		select {
		case <-wtch.Rebuild:
			if err := w.BuildNotebook(false); err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", StyleWarning.Render("warning:"), err)
			}
		case err := <-wtch.Errors:
			fmt.Fprintf(os.Stderr, "%s %v\n", StyleWarning.Render("warning:"), err)
		case <-interrupt:
			return nil
		}
	}
}

// workspaceBuilder is the slice of Workspace the watch loop needs,
// separated so tests can drive the loop with a fake.
type workspaceBuilder interface {
	NotebookDir() string
	BuildNotebook(force bool) error
}

func newNoteBrowseCmd() *cobra.Command {
	var newWindow bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the built notebook in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNoteBrowse(newWindow)
		},
	}
	cmd.Flags().BoolVarP(&newWindow, "new-window", "w", false, "Open a new browser window")
	return cmd
}

func runNoteBrowse(newWindow bool) error {
	w, err := OpenWorkspace()
	if err != nil {
		return err
	}

	index := w.NotebookHTMLIndex()
	if _, err := os.Stat(index); err != nil {
		return fmt.Errorf("notebook has not been built yet; run `labbook build` first")
	}
	return w.LaunchBrowser("file://"+index, newWindow)
}

// slugArg extracts the optional slug argument; empty means "most recent".
func slugArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
