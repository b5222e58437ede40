package cmd

import (
	"path/filepath"

	"okta-import/feature/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyLimit int

// historyCmd lists the recorded runs of an environment.
var historyCmd = &cobra.Command{
	Use:   "history <directory>",
	Short: "Show recent import runs of an environment",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := bootstrap()
		if err != nil {
			return err
		}
		defer l.Sync()

		dir, err := requireDirectory(cfg, l, args)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}

		recorder := openRecorder(cfg, l)
		if !recorder.Enabled() {
			l.Warn("Run history is disabled, set DATABASE_ENABLED=true")
			return nil
		}

		runs, err := recorder.Recent(cmd.Context(), filepath.Base(abs), historyLimit)
		if err != nil {
			return err
		}
		for _, run := range runs {
			logRun(l, run)
		}
		return nil
	},
}

func logRun(l *zap.Logger, run history.ImportRun) {
	l.Info("Import run",
		zap.String("run_id", run.RunID),
		zap.String("kind", run.Kind),
		zap.Time("finished_at", run.FinishedAt),
		zap.Int("fetched", run.Fetched),
		zap.Int("emitted", run.Emitted),
		zap.Int("already_tracked", run.AlreadyTracked),
		zap.Bool("truncated", run.Truncated),
		zap.String("target", run.Target),
		zap.String("error", run.Error),
	)
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
