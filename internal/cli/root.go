package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wetbench/labbook/internal/workspace"
)

var rootCmd = &cobra.Command{
	Use:           "labbook",
	Short:         "Organize a lab notebook from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Labbook organizes the files of a research project: a Sphinx notebook of
dated experiments, shared protocols, and raw data pulled in from
instruments and USB drives.

A project is a directory containing analysis/, data/, documents/,
notebook/, and protocols/ plus a .labbookrc file. Commands find the
project by walking up from the current directory, so they work from
anywhere inside it.

Most commands take a slug: a case-insensitive substring of the thing you
want. Omit it to get the most recent entry. When a slug matches several
entries you are asked which one you meant.

Getting started:
- Create a project: labbook init "Loop dynamics"
- Start an experiment: labbook new "Test gel purity"
- Rebuild the notebook: labbook build
- See it: labbook browse`,
}

// GlobalOptions holds global flags for testing and path overrides.
type GlobalOptions struct {
	ProjectDir string // Override for current working directory
}

// GlobalOpts holds the parsed global flags (exported for testing)
var GlobalOpts GlobalOptions

// GetWorkingDir returns the working directory, respecting the
// --project-dir override.
func GetWorkingDir() (string, error) {
	if GlobalOpts.ProjectDir != "" {
		return GlobalOpts.ProjectDir, nil
	}
	return os.Getwd()
}

// OpenWorkspace finds the enclosing project by walking up from the
// working directory.
func OpenWorkspace() (*workspace.Workspace, error) {
	dir, err := GetWorkingDir()
	if err != nil {
		return nil, err
	}
	return workspace.FromDir(dir)
}

// OpenWorkspaceLenient is OpenWorkspace for commands that also work
// outside a project: when no project encloses the working directory the
// workspace is rooted there, with only the site and user config layers.
// Protocol lookup uses this so shared protocol_dirs stay reachable from
// anywhere.
func OpenWorkspaceLenient() (*workspace.Workspace, error) {
	dir, err := GetWorkingDir()
	if err != nil {
		return nil, err
	}
	return workspace.FromDirLenient(dir)
}

// RootCmd exposes the root command for the entry point.
func RootCmd() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&GlobalOpts.ProjectDir, "project-dir", "", "Override working directory (for testing)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newNoteCmd())
	rootCmd.AddCommand(newProtocolCmd())
	rootCmd.AddCommand(newDataCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDebugCmd())

	// The note subcommands people reach for constantly are also
	// registered at the top level: `labbook edit` = `labbook note edit`.
	rootCmd.AddCommand(newNoteNewCmd())
	rootCmd.AddCommand(newNoteEditCmd())
	rootCmd.AddCommand(newNoteOpenCmd())
	rootCmd.AddCommand(newNoteBuildCmd())
}
