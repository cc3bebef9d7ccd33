package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wetbench/labbook/internal/workspace"
)

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Show where configuration comes from",
		Long: `Show the project root, the config files that were found, and the
merged values they produce. Useful when an option is not taking
effect. Works outside a project too.`,
		Args: cobra.NoArgs,
		RunE: runDebug,
	}
}

func runDebug(cmd *cobra.Command, args []string) error {
	var cfg *workspace.Config

	w, err := OpenWorkspace()
	switch {
	case err == nil:
		fmt.Printf("%s %s\n", StyleHighlight.Render("Project root:"), w.Root())
		cfg = w.Config()
	case errors.As(err, new(*workspace.NotFoundDirError)):
		fmt.Println(StyleDim.Render("Not inside a project."))
		if cfg, err = workspace.LoadConfig(""); err != nil {
			return err
		}
	default:
		return err
	}

	fmt.Println()
	fmt.Println(StyleHighlight.Render("Config files, lowest to highest precedence:"))
	printConfigPath(workspace.SiteConfigPath(), cfg)
	printConfigPath(workspace.UserConfigPath(), cfg)
	if w != nil {
		printConfigPath(w.RCFile(), cfg)
	}

	dump, err := cfg.Dump()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(StyleHighlight.Render("Merged values:"))
	fmt.Print(dump)
	return nil
}

func printConfigPath(path string, cfg *workspace.Config) {
	loaded := false
	for _, p := range cfg.Paths() {
		if p == path {
			loaded = true
			break
		}
	}
	if loaded {
		fmt.Printf("  %s\n", path)
	} else {
		fmt.Printf("  %s %s\n", path, StyleDim.Render("(not found)"))
	}
}
