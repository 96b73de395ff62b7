package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clipforge/clipforge/internal/config"
	"github.com/clipforge/clipforge/internal/engine"
	"github.com/clipforge/clipforge/internal/pipeline"
	"github.com/clipforge/clipforge/internal/probe"
	"github.com/clipforge/clipforge/internal/zoom"
	"github.com/clipforge/clipforge/pkg/types"
)

var (
	rootCmd = &cobra.Command{
		Use:   "clipforge",
		Short: "Compile declarative video effect regions into ffmpeg pipelines",
		Long: `clipforge turns a declarative effect config (zoom, crop, trim,
annotations, background compositing) into an ordered list of ffmpeg
invocations, and can run them for you.

Examples:
  # Show the planned ffmpeg commands for a config
  clipforge plan -c edit.json --shell

  # Plan and execute the pipeline
  clipforge process -c edit.json`,
	}

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Print the planned engine invocations without running them",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			asShell, _ := cmd.Flags().GetBool("shell")

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			steps, err := pipeline.Plan(*cfg)
			if err != nil {
				return err
			}

			for i, step := range steps {
				fmt.Printf("# step %d: %s\n", i+1, step.Description)
				if asShell {
					fmt.Println(pipeline.ShellCommand(step))
				} else {
					out, err := json.Marshal(step.Args)
					if err != nil {
						return err
					}
					fmt.Println(string(out))
				}
			}
			return nil
		},
	}

	processCmd = &cobra.Command{
		Use:   "process",
		Short: "Plan and execute the pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")

			logger := newLogger(verbose)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			steps, err := pipeline.Plan(*cfg)
			if err != nil {
				return err
			}
			logger.Info().
				Int("steps", len(steps)).
				Str("input", cfg.InputPath).
				Str("output", cfg.OutputPath).
				Msg("pipeline planned")

			return engine.NewRunner(logger).Run(context.Background(), steps)
		},
	}

	keyframesCmd = &cobra.Command{
		Use:   "keyframes",
		Short: "Dump the sampled zoom trajectory as JSON",
		Long: `Dump the discretized zoom trajectory for engines without native
expression support. One sample per tick with the interpolated crop box.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			intervalMs, _ := cmd.Flags().GetFloat64("interval")

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			frames := zoom.SampleKeyframes(cfg.Zoom, *cfg.Video, intervalMs)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(frames)
		},
	}
)

// loadConfig reads the config file and probes the input when the caller
// supplied no video metadata.
func loadConfig(path string) (*types.ProcessingConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Video == nil {
		info, err := probe.VideoInfo(cfg.InputPath)
		if err != nil {
			return nil, err
		}
		cfg.Video = info
	}
	return cfg, nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func init() {
	planCmd.Flags().StringP("config", "c", "", "Processing config file (JSON or YAML)")
	planCmd.Flags().Bool("shell", false, "Render steps as shell command lines")
	planCmd.MarkFlagRequired("config")

	processCmd.Flags().StringP("config", "c", "", "Processing config file (JSON or YAML)")
	processCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	processCmd.MarkFlagRequired("config")

	keyframesCmd.Flags().StringP("config", "c", "", "Processing config file (JSON or YAML)")
	keyframesCmd.Flags().Float64("interval", zoom.DefaultSampleMs, "Sample interval in milliseconds")
	keyframesCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(keyframesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
