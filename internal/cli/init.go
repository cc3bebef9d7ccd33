package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wetbench/labbook/internal/scaffold"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <title>",
		Short: "Create a new project directory",
		Long: `Create a new project named after the given title, with the standard
layout: analysis/, data/, documents/, notebook/, protocols/, and a
.labbookrc config file. The notebook is set up for Sphinx. A git
repository is initialized when git is available.

Examples:
  labbook init "Loop dynamics"
  labbook init crispr_screen`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	parent, err := GetWorkingDir()
	if err != nil {
		return err
	}

	result, err := scaffold.Create(parent, title)
	if err != nil {
		return err
	}

	fmt.Printf("%s Created project in %s\n", StyleOK.Render("✓"), result.Root)
	if result.GitInitialized {
		fmt.Printf("%s Initialized git repository\n", StyleOK.Render("✓"))
	} else {
		fmt.Println(StyleDim.Render("  (git not available; skipped repository setup)"))
	}
	return nil
}
