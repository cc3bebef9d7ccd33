package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wetbench/labbook/internal/reader"
	"github.com/wetbench/labbook/internal/workspace"
)

func newProtocolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protocol",
		Short: "Consult and record experimental protocols",
		Long: `Work with protocols: the plain-text, script, and document files under
the project's protocols/ directory and any shared directories named in
the config. Protocols in earlier directories shadow same-named ones in
later directories.`,
	}
	cmd.AddCommand(newProtocolLsCmd())
	cmd.AddCommand(newProtocolShowCmd())
	cmd.AddCommand(newProtocolPrintCmd())
	cmd.AddCommand(newProtocolEditCmd())
	cmd.AddCommand(newProtocolSaveCmd())
	return cmd
}

func newProtocolLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [slug]",
		Short: "List protocols by directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProtocolLs,
	}
}

func runProtocolLs(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspaceLenient()
	if err != nil {
		return err
	}

	byDir, dirs, err := w.ListProtocols(slugArg(args))
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		ids := byDir[dir]
		if len(ids) == 0 {
			continue
		}
		fmt.Println(StyleHeader.Render(dir))
		for _, id := range ids {
			fmt.Printf("  %s\n", StyleID.Render(id))
		}
	}
	return nil
}

func newProtocolShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug> [args...]",
		Short: "Display a protocol",
		Long: `Display the protocol matching the slug. Script protocols are executed
and their output shown; extra arguments are passed to the script.
Document protocols open in the corresponding application.

Examples:
  labbook protocol show miniprep
  labbook protocol show serial_dilution 1e-3 6`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProtocolShow,
	}
}

func runProtocolShow(cmd *cobra.Command, args []string) error {
	w, r, err := protocolReader(args)
	if err != nil {
		return err
	}
	return r.Show(w, cmd.OutOrStdout())
}

func newProtocolPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print <slug>",
		Short: "Print a protocol via lpr",
		Args:  cobra.ExactArgs(1),
		RunE:  runProtocolPrint,
	}
}

func runProtocolPrint(cmd *cobra.Command, args []string) error {
	w, r, err := protocolReader(args)
	if err != nil {
		return err
	}
	return r.Print(w)
}

func newProtocolEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <slug>",
		Short: "Open a protocol in the editor",
		Args:  cobra.ExactArgs(1),
		RunE:  runProtocolEdit,
	}
}

func runProtocolEdit(cmd *cobra.Command, args []string) error {
	w, r, err := protocolReader(args)
	if err != nil {
		return err
	}
	return r.Edit(w)
}

func newProtocolSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <slug> [dir]",
		Short: "Save a date-stamped copy of a protocol",
		Long: `Save a date-stamped copy of the protocol into the given directory,
defaulting to the current one. Run from an experiment directory this
records exactly which version of the protocol was followed. Script
protocols are executed and their output saved.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runProtocolSave,
	}
}

func runProtocolSave(cmd *cobra.Command, args []string) error {
	w, err := OpenWorkspaceLenient()
	if err != nil {
		return err
	}

	path, err := pickPath(w.PickProtocol, args[0])
	if err != nil {
		return err
	}
	r, err := reader.Pick(path, nil)
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

	saved, err := r.Save(w, dir)
	if err != nil {
		return err
	}
	fmt.Printf("%s Saved %s\n", StyleOK.Render("✓"), filepath.Base(saved))
	return nil
}

// protocolReader resolves args[0] to a protocol and builds its reader,
// passing any remaining arguments through.
func protocolReader(args []string) (*workspace.Workspace, reader.Reader, error) {
	w, err := OpenWorkspaceLenient()
	if err != nil {
		return nil, nil, err
	}

	path, err := pickPath(w.PickProtocol, args[0])
	if err != nil {
		return nil, nil, err
	}
	r, err := reader.Pick(path, args[1:])
	if err != nil {
		return nil, nil, err
	}
	return w, r, nil
}
