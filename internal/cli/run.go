package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vespertine/reliquary/internal/ritual"
	"github.com/vespertine/reliquary/internal/session"
	"github.com/vespertine/reliquary/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Seed     string
	DT       float64
	Realtime bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ritual headless",
		Long: `Run the full ritual sequence without a renderer, logging state
transitions, and print the edition and relic fingerprint on completion.

With --db the visitor token persists across invocations, so repeated runs
reproduce the same edition. Without it the session is ephemeral.

Example:
  reliquary run --db ./visitor.db
  reliquary run --seed TEST-001 --dt 0.05 --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRitual(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite visitor store (default: ephemeral)")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "explicit session seed (overrides persisted token)")
	cmd.Flags().Float64Var(&opts.DT, "dt", 1.0/60, "synthetic tick delta in seconds")
	cmd.Flags().BoolVar(&opts.Realtime, "realtime", false, "sleep between ticks (watch the ritual in real time)")

	return cmd
}

func runRitual(opts *RunOptions, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
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

	sess.Controller().OnTransition(func(from, to ritual.State) {
		logger.Info("ritual transition",
			"from", from.Name,
			"to", to.Name,
			"global_progress", fmt.Sprintf("%.3f", sess.Controller().GlobalProgress()),
		)
	})

	logger.Info("ritual starting", "edition", sess.Edition().Label, "seed", sess.Seed())
	for !sess.Controller().Completed() {
		sess.Update(opts.DT)
		if opts.Realtime {
			time.Sleep(time.Duration(opts.DT * float64(time.Second)))
		}
	}

	snap, _ := sess.Relic()
	manifest, err := snap.BuildManifest()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build relic manifest", err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"edition":      manifest.Edition,
			"fingerprint":  manifest.Fingerprint,
			"completed_at": manifest.CompletedAt,
			"filename":     snap.Filename(),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", manifest.Edition.Label)
	fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", manifest.CompletedAt)
	fmt.Fprintf(cmd.OutOrStdout(), "Relic %s\n", manifest.Fingerprint)
	return nil
}

// openPersistence opens the SQLite visitor store, or falls back to
// in-memory persistence when no path is given or the store cannot be
// opened. A broken store never fails the session, it only loses
// continuity between visits.
func openPersistence(path string, logger *slog.Logger) (session.Persistence, func(), error) {
	if path == "" {
		return session.NewMemoryPersistence(), func() {}, nil
	}
	st, err := store.Open(path)
	if err != nil {
		logger.Warn("visitor store unavailable, session is ephemeral", "path", path, "error", err)
		return session.NewMemoryPersistence(), func() {}, nil
	}
	return st, func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing visitor store", "error", closeErr)
		}
	}, nil
}
