package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vespertine/reliquary/internal/session"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
	Seed     string
	DT       float64
	Output   string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run the ritual to completion and export the relic manifest",
		Long: `Run the ritual headless and write the frozen relic manifest as JSON.

The manifest holds the edition, the frozen parameter snapshot, the full
seed-derived layout, and the content-addressed fingerprint. Export
failures leave nothing half-written: output goes to a temp file renamed
into place.

Example:
  reliquary export --seed TEST-001 -o relic.json
  reliquary export --db ./visitor.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite visitor store (default: ephemeral)")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "explicit session seed (overrides persisted token)")
	cmd.Flags().Float64Var(&opts.DT, "dt", 1.0/60, "synthetic tick delta in seconds")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path (default: relic-NNN-<timestamp>.json)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if opts.DT <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--dt must be > 0, got %g", opts.DT))
	}

	persist, cleanup, err := openPersistence(opts.Database, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	sess, err := session.New(session.Options{
		Persist:      persist,
		OverrideSeed: opts.Seed,
		Logger:       logger,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build session", err)
	}

	for !sess.Controller().Completed() {
		sess.Update(opts.DT)
	}

	snap, _ := sess.Relic()
	path := opts.Output
	if path == "" {
		path = snap.Filename() + ".json"
	}

	if err := writeAtomic(path, sess.Export); err != nil {
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"path":    path,
			"edition": sess.Edition(),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", sess.Edition().Label, path)
	return nil
}

// writeAtomic writes via a temp file plus rename so a failed export never
// leaves a truncated manifest behind. The temp file lives next to the
// target so the rename stays on one filesystem.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".relic-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
