package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"call-compositor/internal/composition"
	"call-compositor/internal/jobfile"
	"call-compositor/internal/platform/config"
	"call-compositor/internal/platform/logger"
)

type Dependencies struct {
	Settings config.Settings
	Out      io.Writer
	Err      io.Writer
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	width   int
	height  int
	verbose bool
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "compose",
		Short:         "Build call-recording composite filter graphs",
		Long:          "Reads a YAML job describing per-participant recordings and prints the ffmpeg filter graph, or the full ffmpeg argument vector, that composites them into one video.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(deps.Out)
	rootCmd.SetErr(deps.Err)

	rootCmd.PersistentFlags().IntVar(&flags.width, "width", 0, "canvas width (overrides job file and CANVAS_WIDTH)")
	rootCmd.PersistentFlags().IntVar(&flags.height, "height", 0, "canvas height (overrides job file and CANVAS_HEIGHT)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log composition details to stderr")

	rootCmd.AddCommand(NewGraphCmd(deps, flags))
	rootCmd.AddCommand(NewArgsCmd(deps, flags))

	return rootCmd
}

// composeJob loads the job at path and composes it. Canvas size precedence is
// flag, then job file, then environment.
func composeJob(deps *Dependencies, flags *globalFlags, path string) (*jobfile.Job, *composition.Plan, error) {
	level := deps.Settings.LogLevel
	if flags.verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(deps.Err, level, "text")

	job, err := jobfile.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading job: %w", err)
	}

	dims := composition.Dimensions{Width: deps.Settings.CanvasWidth, Height: deps.Settings.CanvasHeight}
	if jd := job.Dimensions(); jd.Width > 0 && jd.Height > 0 {
		dims = jd
	}
	if flags.width > 0 {
		dims.Width = flags.width
	}
	if flags.height > 0 {
		dims.Height = flags.height
	}

	artifacts := job.Artifacts()
	plan, err := composition.Compose(artifacts, composition.Options{
		Dimensions:  dims,
		OutputLabel: deps.Settings.OutputLabel,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("composing %s: %w", path, err)
	}
	if len(plan.Groups) == 0 {
		return nil, nil, fmt.Errorf("%s: job has no artifacts", path)
	}

	log.Debug("job composed",
		slog.String("job", path),
		slog.Int("artifacts", len(artifacts)),
		slog.Int("groups", len(plan.Groups)),
		slog.Int64("duration_ms", plan.Duration()))
	for i, g := range plan.Groups {
		log.Debug("group",
			slog.Int("index", i),
			slog.Int64("start", g.Start),
			slog.Int64("end", g.End),
			slog.Any("ids", g.IDs),
			slog.String("layout", g.Layout.String()))
	}
	return job, plan, nil
}
