package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldviz/internal/config"
)

var (
	dataDir string
	verbose bool

	// render
	preset     string
	configFile string
	formats    []string
	seed       uint64
	themeName  string
	outDir     string
	width      int
	height     int

	// preview
	previewWidth  int
	previewHeight int
	noColor       bool

	// export-csv
	csvOut   string
	csvPanel int
	csvTrace int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fieldviz",
		Short:         "procedural scientific dashboards",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultOutputDir, "run directory root")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	renderCmd := &cobra.Command{
		Use:   "render [kind...]",
		Short: "build dashboards and write them to a new run",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset config")
	renderCmd.Flags().StringVar(&configFile, "config", "", "yaml config file")
	renderCmd.Flags().StringSliceVarP(&formats, "format", "f", []string{config.DefaultFormat}, "output formats (html, png, svg, terminal)")
	renderCmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	renderCmd.Flags().StringVar(&themeName, "theme", "", "theme for every dashboard (default: each dashboard's own)")
	renderCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: --data)")
	renderCmd.Flags().IntVar(&width, "width", 0, "figure width in pixels")
	renderCmd.Flags().IntVar(&height, "height", 0, "figure height in pixels")

	previewCmd := &cobra.Command{
		Use:   "preview [kind]",
		Short: "print a terminal preview of a dashboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	previewCmd.Flags().StringVar(&themeName, "theme", "", "theme")
	previewCmd.Flags().IntVar(&previewWidth, "width", 60, "chart width in columns")
	previewCmd.Flags().IntVar(&previewHeight, "height", 10, "chart height in rows")
	previewCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")

	exportCmd := &cobra.Command{
		Use:   "export-csv [kind]",
		Short: "write the values of a dashboard field as csv",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCSV,
	}
	exportCmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	exportCmd.Flags().StringVarP(&csvOut, "out", "o", "", "output file (default: stdout)")
	exportCmd.Flags().IntVar(&csvPanel, "panel", 0, "panel index")
	exportCmd.Flags().IntVar(&csvTrace, "trace", 0, "trace index within the panel")

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "list dashboard kinds",
		RunE:  listKinds,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list themes and color scales",
		RunE:  listThemes,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a run manifest",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	rootCmd.AddCommand(renderCmd, previewCmd, exportCmd, kindsCmd, presetsCmd, themesCmd, runsCmd, showCmd)
	return rootCmd
}
