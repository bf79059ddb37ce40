package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vespertine/reliquary/internal/harness"
)

// VerifyResult summarizes a verify run for JSON output.
type VerifyResult struct {
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// ScenarioResult is one scenario's outcome.
type ScenarioResult struct {
	Name        string   `json:"name"`
	Passed      bool     `json:"passed"`
	Fingerprint string   `json:"fingerprint"`
	Failures    []string `json:"failures,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [scenarios-dir]",
		Short: "Run determinism conformance scenarios",
		Long: `Run determinism conformance scenarios: each runs a full headless
session twice and checks that both runs produce identical layouts, plus
any expectations the scenario declares.

With no argument, runs the built-in scenario set.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runVerify(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenarios := harness.Builtin()
	if len(args) == 1 {
		loaded, err := harness.LoadDir(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenarios", err)
		}
		scenarios = loaded
	}

	result := VerifyResult{}
	for _, sc := range scenarios {
		formatter.VerboseLog("running scenario %s (%s)", sc.Name, sc.Description)
		res, err := harness.Run(sc)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s errored", sc.Name), err)
		}
		sr := ScenarioResult{
			Name:        sc.Name,
			Passed:      res.Passed,
			Fingerprint: res.Fingerprint,
			Failures:    res.Failures,
		}
		result.Scenarios = append(result.Scenarios, sr)
		if res.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
		if opts.Format != "json" {
			status := "PASS"
			if !res.Passed {
				status = "FAIL"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", status, sc.Name)
			for _, f := range res.Failures {
				fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", f)
			}
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%d passed, %d failed\n", result.Passed, result.Failed)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}
