package main

import (
	"context"
	"fmt"
	"os"

	"github.com/keagan/motioncut/internal/config"
	"github.com/keagan/motioncut/internal/logging"
	"github.com/keagan/motioncut/internal/pipeline"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	verbose bool

	inputDir  string
	outputDir string
	workers   int
	reel      bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "motioncut",
	Short: "motioncut - extract motion clips from static-camera footage",
	Long:  "Scans video files for motion and losslessly extracts only the segments containing activity, discarding static footage.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		logging.Init(verbose)

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./motioncut.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	scanCmd.Flags().StringVarP(&inputDir, "input", "i", "", "input directory (overrides config)")
	scanCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	scanCmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel videos (overrides config)")
	scanCmd.Flags().BoolVar(&reel, "reel", false, "also concat each video's clips into a highlight reel")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(configCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan an input directory and extract motion clips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if inputDir != "" {
			cfg.InputDir = inputDir
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		if workers > 0 {
			cfg.Workers = workers
		}

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		summary, err := pipe.Run(cmd.Context(), pipeline.BatchOptions{
			InputDir:  cfg.InputDir,
			OutputDir: cfg.OutputDir,
			Reel:      reel,
		})
		if err != nil {
			return err
		}

		cliLog := logging.WithComponent("cli")
		cliLog.Info().
			Int("extracted", summary.Extracted).
			Str("output", cfg.OutputDir).
			Msg("done")

		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [video]",
	Short: "Detect motion intervals in one video without extracting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		pipe, err := pipeline.New(log.Logger, cfg)
		if err != nil {
			return err
		}

		analysis, err := pipe.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cliLog := logging.WithComponent("cli")
		cliLog.Info().
			Float64("duration_s", analysis.Duration).
			Int("sampled_frames", analysis.SampledFrames).
			Float64("peak_fraction", analysis.PeakFraction).
			Int("events", len(analysis.Events)).
			Msg("analysis complete")

		if len(analysis.Intervals) == 0 {
			fmt.Println("no motion detected")
			return nil
		}

		for i, iv := range analysis.Intervals {
			fmt.Printf("clip %d: %.1fs - %.1fs (%.1fs)\n", i+1, iv.Start, iv.End, iv.Duration())
		}

		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if err := cfg.Validate(); err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}

		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
