package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/san-kum/fieldviz/internal/scene"
)

// ErrUnknownFormat is returned for output formats no renderer handles.
var ErrUnknownFormat = errors.New("render: unknown format")

// Output formats.
const (
	FormatHTML     = "html"
	FormatPNG      = "png"
	FormatSVG      = "svg"
	FormatTerminal = "terminal"
)

// Renderer serializes a scene to one output format.
type Renderer interface {
	Render(w io.Writer, s *scene.Scene) error
	Format() string
}

// For returns the renderer for a format name. "txt" is an alias for the
// terminal preview.
func For(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatHTML:
		return HTML{}, nil
	case FormatPNG:
		return Static{Kind: FormatPNG}, nil
	case FormatSVG:
		return Static{Kind: FormatSVG}, nil
	case FormatTerminal, "txt":
		return Terminal{Width: 60, Height: 10}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// Formats lists the accepted format names.
func Formats() []string {
	f := []string{FormatHTML, FormatPNG, FormatSVG, FormatTerminal}
	sort.Strings(f)
	return f
}

// Extension is the file suffix written for a format.
func Extension(format string) string {
	if strings.EqualFold(format, FormatTerminal) {
		return ".txt"
	}
	return "." + strings.ToLower(format)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "htm":
		return FormatHTML, nil
	case "txt":
		return FormatTerminal, nil
	case FormatHTML, FormatPNG, FormatSVG:
		return ext, nil
	}
	return "", fmt.Errorf("%w for %q", ErrUnknownFormat, path)
}

// RenderFile writes s to path in the given format. An empty format is taken
// from the path's extension. The file is only left behind when rendering
// succeeds.
func RenderFile(s *scene.Scene, path, format string) error {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}
	r, err := For(format)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("render: create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := r.Render(f, s); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("render %s: %w", r.Format(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("render: close %s: %w", path, err)
	}
	slog.Debug("rendered scene", "path", path, "format", r.Format(), "panels", len(s.Panels), "traces", s.TraceCount())
	return nil
}
