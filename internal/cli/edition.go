package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vespertine/reliquary/internal/edition"
	"github.com/vespertine/reliquary/internal/session"
)

// NewEditionCommand creates the edition command.
func NewEditionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edition <visitor-token>",
		Short: "Show the edition allocated to a visitor token",
		Long: `Print the edition number and label a visitor token maps to under the
current master seed. Allocation is a pure function: the same token always
prints the same edition.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := edition.Allocate(args[0], session.MasterSeed)

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			if rootOpts.Format == "json" {
				return formatter.Success(ed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ed.Label)
			return nil
		},
	}
	return cmd
}
