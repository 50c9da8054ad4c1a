package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"objview/internal/batch"
	"objview/internal/config"
	"objview/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		flags      config.Flags
		begin, end int
	)

	cmd := &cobra.Command{
		Use:           "render",
		Short:         "Render a mesh from every pose of a camera path",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("begin") {
				flags.Begin = &begin
			}
			if cmd.Flags().Changed("end") {
				flags.End = &end
			}
			err := run(configFile, flags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "Path to a YAML or JSON config file")
	f.StringVar(&flags.Model, "model", "", "OBJ model to render")
	f.StringVar(&flags.OutputDir, "output", "", "Output directory (default: renders)")
	f.StringVar(&flags.Mode, "mode", "", "Camera path: turntable or table")
	f.StringVar(&flags.Format, "format", "", "Color image format: png, webp or tga")
	f.IntVar(&flags.Supersample, "supersample", 0, "Supersampling factor (default: 2)")
	f.StringVar(&flags.LogLevel, "log-level", "", "debug, info, warn, error or disabled")
	f.IntVar(&begin, "begin", 0, "First frame (accepted, not applied)")
	f.IntVar(&end, "end", 0, "Last frame (accepted, not applied)")

	return cmd
}

func run(configFile string, flags config.Flags) error {
	// Load config
	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	}

	// CLI flags override config file
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.LogLevel(cfg.LogLevel)
	log := logger.NewLogger(logCfg)

	log.Info("objview renderer",
		"model", cfg.Model,
		"mode", cfg.Mode,
		"format", cfg.Format,
		"supersample", cfg.Supersample,
	)

	sum, err := batch.Run(cfg, log)
	if err != nil {
		log.Error("Run aborted", "frames", sum.Frames, "err", err)
		return err
	}

	fps := 0.0
	if s := sum.Elapsed.Seconds(); s > 0 {
		fps = float64(sum.Frames) / s
	}
	log.Info("Done",
		"frames", sum.Frames,
		"elapsed", fmt.Sprintf("%.1fs", sum.Elapsed.Seconds()),
		"frames_per_sec", fmt.Sprintf("%.1f", fps),
		"manifest", sum.Manifest,
		"snapshot", sum.Snapshot,
	)
	return nil
}
