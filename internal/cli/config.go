package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wetbench/labbook/internal/workspace"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the merged configuration",
		Long: `Show the configuration after merging the site, user, and project
files. Scalar options from more specific files win; list options like
protocol directories and data sources are concatenated with the
project's entries first.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigAnywhere()
	if err != nil {
		return err
	}

	dump, err := cfg.Dump()
	if err != nil {
		return err
	}
	fmt.Print(dump)
	return nil
}

// loadConfigAnywhere loads the merged config from inside a project when
// one encloses the working directory, and from just the site and user
// files otherwise.
func loadConfigAnywhere() (*workspace.Config, error) {
	w, err := OpenWorkspace()
	if err == nil {
		return w.Config(), nil
	}
	var nf *workspace.NotFoundDirError
	if errors.As(err, &nf) {
		return workspace.LoadConfig("")
	}
	return nil, err
}
