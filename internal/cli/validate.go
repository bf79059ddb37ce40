package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vespertine/reliquary/internal/ritual"
	"github.com/vespertine/reliquary/internal/score"
)

// ValidationResult holds score validation results.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	States []string `json:"states,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [score.cue]",
		Short: "Validate a ritual score",
		Long: `Compile and validate a CUE ritual score without running it.

With no argument, validates the embedded canonical score (useful as a
build sanity check).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	states, err := loadScore(path)
	if err != nil {
		var compileErr *score.CompileError
		code := "E_SCORE"
		if !errors.As(err, &compileErr) {
			code = "E_LOAD"
		}
		if opts.Format == "json" {
			if ferr := formatter.Success(ValidationResult{Valid: false, Error: err.Error()}); ferr != nil {
				return ferr
			}
		} else {
			if ferr := formatter.Error(code, err.Error(), nil); ferr != nil {
				return ferr
			}
		}
		return NewExitError(ExitFailure, "score invalid")
	}

	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.Name
	}
	formatter.VerboseLog("compiled %d states", len(states))

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, States: names})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "valid: %d states (%s ... %s)\n", len(states), names[0], names[len(names)-1])
	return nil
}

func loadScore(path string) ([]ritual.State, error) {
	if path == "" {
		return score.Default()
	}
	return score.Load(path)
}
