package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adalundhe/collectc/core/collection"
	"github.com/adalundhe/collectc/core/config"
	"github.com/adalundhe/collectc/core/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [skills|competencies|all]",
	Short: "Recompile collections when their sources change",
	Long: `Compile the selected collections once, then watch their record stores
and metadata files and rewrite the artifacts whenever a source changes.
Compilation failures are logged and watching continues.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"skills", "competencies", "all"},
	RunE:      runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchTarget is one collection kept current by watch mode.
type watchTarget struct {
	variant  collection.Variant
	defaults config.Variant
}

func runWatch(cmd *cobra.Command, args []string) error {
	selector := "all"
	if len(args) == 1 {
		selector = args[0]
	}
	targets, err := watchTargets(selector)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var paths []string
	for _, target := range targets {
		recompile(target, logger)
		paths = append(paths, target.defaults.Dir, target.defaults.Meta)
	}

	w, err := watcher.New(watcher.Config{
		Paths:    paths,
		Debounce: cfg.Watch.DebounceDuration(),
	})
	if err != nil {
		return err
	}
	defer w.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	logger.Info("watching for changes", "paths", paths)
	for {
		select {
		case <-stop:
			logger.Info("stopping")
			return nil
		case <-w.Done():
			return nil
		case path := <-w.Events():
			logger.Info("change detected", "path", path)
			for _, target := range targets {
				recompile(target, logger)
			}
		}
	}
}

func watchTargets(selector string) ([]watchTarget, error) {
	skills := watchTarget{variant: collection.Skills, defaults: cfg.Skills}
	competencies := watchTarget{variant: collection.Competencies, defaults: cfg.Competencies}

	switch selector {
	case "skills":
		return []watchTarget{skills}, nil
	case "competencies":
		return []watchTarget{competencies}, nil
	case "all":
		return []watchTarget{skills, competencies}, nil
	}
	return nil, fmt.Errorf("%w: unknown watch target %q", collection.ErrInvalidArgument, selector)
}

// recompile runs one compile+write cycle for a target. Failures are logged
// rather than returned: a broken record should not stop the watcher.
func recompile(target watchTarget, logger *slog.Logger) {
	opts := collection.Options{
		MetaPath:   target.defaults.Meta,
		RecordsDir: target.defaults.Dir,
		SortKey:    target.defaults.SortBy,
		Exclude:    target.defaults.Exclude,
	}
	artifact, err := collection.Compile(opts, target.variant)
	if err != nil {
		logger.Error("compile failed", "collection", target.variant.Name, "error", err)
		return
	}
	if err := collection.Write(target.defaults.Out, artifact.Bytes); err != nil {
		logger.Error("write failed", "collection", target.variant.Name, "error", err)
		return
	}
	logger.Info("artifact written",
		"collection", target.variant.Name,
		"out", target.defaults.Out,
		"records", artifact.Count,
		"fingerprint", collection.Fingerprint(artifact.Bytes)[:12])
}
