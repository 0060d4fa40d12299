package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/dashboard"
	"github.com/san-kum/fieldviz/internal/printer"
	"github.com/san-kum/fieldviz/internal/render"
	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/store"
	"github.com/san-kum/fieldviz/internal/theme"
)

// resolveConfig layers defaults, preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("format") {
		cfg.Formats = formats
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	switch {
	case flags.Changed("out"):
		cfg.OutputDir = outDir
	case flags.Changed("data") || cfg.OutputDir == "":
		cfg.OutputDir = dataDir
	}
	if len(args) > 0 {
		cfg.Kinds = args
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// themeFor picks the configured theme, falling back to the one the kind was
// designed for.
func themeFor(k dashboard.Kind, name string, w, h int) (theme.Config, error) {
	if name == "" {
		name = k.Theme
	}
	th, ok := theme.Get(name)
	if !ok {
		return theme.Config{}, fmt.Errorf("unknown theme %q (available: %v)", name, theme.Names())
	}
	return th.WithSize(w, h), nil
}

func buildScene(reg *dashboard.Registry, kind string, cfg *config.Config) (*scene.Scene, error) {
	k, err := reg.Get(kind)
	if err != nil {
		return nil, err
	}
	th, err := themeFor(k, cfg.Theme, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	custom, ok, err := cfg.ColorScale()
	if err != nil {
		return nil, err
	}
	if ok {
		th = th.WithScale(custom)
	}
	tuning, err := cfg.Tuning.Dashboard()
	if err != nil {
		return nil, err
	}
	return reg.Build(kind, cfg.Seed, th, tuning)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	reg := dashboard.NewRegistry()

	// resolve every name before writing anything
	for _, kind := range cfg.Kinds {
		if _, err := reg.Get(kind); err != nil {
			return err
		}
	}
	for _, format := range cfg.Formats {
		if _, err := render.For(format); err != nil {
			return err
		}
	}

	st := store.New(cfg.OutputDir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	meta, err := st.Create(cfg.Seed)
	if err != nil {
		return err
	}
	meta.Theme = cfg.Theme
	meta.Preset = preset

	start := time.Now()
	for _, kind := range cfg.Kinds {
		s, err := buildScene(reg, kind, cfg)
		if err != nil {
			return err
		}
		for _, format := range cfg.Formats {
			name := kind + render.Extension(format)
			if err := render.RenderFile(s, st.Path(meta.ID, name), format); err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			err := st.Record(meta, store.Artifact{
				Kind:   kind,
				Format: format,
				Path:   name,
				Panels: len(s.Panels),
				Traces: s.TraceCount(),
			})
			if err != nil {
				return err
			}
		}
	}
	if err := st.Save(meta); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	slog.Info("run saved", "id", meta.ID, "artifacts", len(meta.Artifacts), "elapsed", time.Since(start).Round(time.Millisecond))

	lines := []string{
		printer.KeyValue("run", meta.ID),
		printer.KeyValue("directory", st.Dir(meta.ID)),
		printer.KeyValue("seed", meta.Seed),
	}
	for _, a := range meta.Artifacts {
		lines = append(lines, printer.KeyValue(a.Format, fmt.Sprintf("%s (%d bytes)", a.Path, a.Bytes)))
	}
	fmt.Println(printer.Box(printer.Success.Render("render complete"), strings.Join(lines, "\n")))
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Seed = seed
	cfg.Theme = themeName
	kind := config.DefaultKind
	if len(args) > 0 {
		kind = args[0]
	}

	s, err := buildScene(dashboard.NewRegistry(), kind, cfg)
	if err != nil {
		return err
	}
	if !noColor {
		fmt.Println(printer.Banner(kind, s.Theme))
	}
	t := render.Terminal{Width: previewWidth, Height: previewHeight, Color: !noColor}
	return t.Render(os.Stdout, s)
}
