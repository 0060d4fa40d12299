package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/dashboard"
	"github.com/san-kum/fieldviz/internal/printer"
	"github.com/san-kum/fieldviz/internal/store"
	"github.com/san-kum/fieldviz/internal/theme"
)

func listKinds(cmd *cobra.Command, args []string) error {
	reg := dashboard.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tTHEME\tDESCRIPTION")
	for _, name := range reg.List() {
		k, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", k.Name, k.Theme, k.Description)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTHEME\tFORMATS\tSIZE\tKINDS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		th := p.Theme
		if th == "" {
			th = "(per kind)"
		}
		size := "default"
		if p.Width > 0 && p.Height > 0 {
			size = fmt.Sprintf("%dx%d", p.Width, p.Height)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", name, th, strings.Join(p.Formats, ","), size, len(p.Kinds))
	}
	return w.Flush()
}

func listThemes(cmd *cobra.Command, args []string) error {
	for _, name := range theme.Names() {
		th, _ := theme.Get(name)
		fmt.Println(printer.Banner(name, th))
		fmt.Println(printer.KeyValue("size", fmt.Sprintf("%dx%d", th.Width, th.Height)))
		fmt.Println(printer.KeyValue("font", th.FontFamily))
		fmt.Println(printer.KeyValue("scale", th.Scale.Name+" "+printer.Swatch(th.Scale, 24)))
		fmt.Println()
	}

	fmt.Println(printer.Header.Render("color scales"))
	for _, name := range theme.ScaleNames() {
		s, _ := theme.Scale(name)
		fmt.Println(printer.KeyValue(name, printer.Swatch(s, 32)))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(printer.Warning.Render("no runs in ") + printer.Subtle.Render(dataDir))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tTHEME\tPRESET\tARTIFACTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%d\n",
			run.ID,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Seed,
			orDash(run.Theme),
			orDash(run.Preset),
			len(run.Artifacts),
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, err := store.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	return store.WriteManifest(os.Stdout, meta)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Seed = seed
	kind := config.DefaultKind
	if len(args) > 0 {
		kind = args[0]
	}
	s, err := buildScene(dashboard.NewRegistry(), kind, cfg)
	if err != nil {
		return err
	}
	if csvPanel < 0 || csvPanel >= len(s.Panels) {
		return fmt.Errorf("%s has %d panels, no panel %d", kind, len(s.Panels), csvPanel)
	}
	p := s.Panels[csvPanel]
	if csvTrace < 0 || csvTrace >= len(p.Traces) {
		return fmt.Errorf("%s panel %d has %d traces, no trace %d", kind, csvPanel, len(p.Traces), csvTrace)
	}

	f := p.Traces[csvTrace].Field
	if csvOut == "" {
		return store.WriteCSV(os.Stdout, f)
	}
	if err := store.ExportCSV(csvOut, f); err != nil {
		return err
	}
	fmt.Println(printer.Success.Render("exported ") + csvOut)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
