package commands

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/loomstack-labs/specloom/internal/cli/config"
	"github.com/loomstack-labs/specloom/pkg/check"
	_ "github.com/loomstack-labs/specloom/pkg/check/rules" // register consistency rules
)

// watchDebounce coalesces editor save bursts into one validation run.
const watchDebounce = 200 * time.Millisecond

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Disable  []string
	Severity string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <spec-file>",
		Short: "Re-validate a specification on every change",
		Long: `Watch a specification file and re-run the consistency checks
whenever it changes. Press Ctrl+C to stop.`,
		Example: `  # Watch a spec
  specloom watch app.spec.yaml

  # Watch and only report errors
  specloom watch app.spec.yaml --severity error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "info", "Minimum severity: error, warning, info")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, opts *WatchOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	cfg := cmdCtx.Cfg
	logger := config.GetLogger(cmd.Context())
	r := cmdCtx.Renderer

	checkCfg, err := buildCheckConfig(cfg, &ValidateOptions{Disable: opts.Disable})
	if err != nil {
		return err
	}
	analyzer := check.NewAnalyzer(checkCfg)

	validateOnce := func() {
		nodes, edges, screens, err := loadSpecFile(path)
		if err != nil {
			r.Error(err.Error())
			return
		}
		report := analyzer.Validate(nodes, edges, screens)
		display := filterBySeverity(report, opts.Severity)
		if err := renderValidateResults(r, path, report, display); err != nil {
			r.Error(err.Error())
		}
	}

	// Initial run before waiting for changes
	validateOnce()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file itself: editors that
	// write via rename would otherwise drop the watch.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.Printf("Watching %s for changes...\n", path)

	target, _ := filepath.Abs(path)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, _ := filepath.Abs(event.Name)
			if name != target {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				logger.Debug("spec changed, re-validating", "file", event.Name)
				validateOnce()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
