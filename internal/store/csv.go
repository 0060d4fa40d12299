package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/fieldviz/internal/field"
)

// WriteCSV writes one row per sample of f. Grids and volumes list every cell
// with its coordinates; masked cells have an empty value.
func WriteCSV(w io.Writer, f *field.Field) error {
	if err := f.Validate(); err != nil {
		return err
	}
	cw := csv.NewWriter(w)

	switch f.Kind {
	case field.KindGrid:
		if err := cw.Write([]string{"x", "y", "value"}); err != nil {
			return err
		}
		xs, ys := f.Coords[0], f.Coords[1]
		for j, y := range ys {
			for i, x := range xs {
				if err := cw.Write([]string{num(x), num(y), num(f.Values[j*len(xs)+i])}); err != nil {
					return err
				}
			}
		}
	case field.KindVolume:
		if err := cw.Write([]string{"x", "y", "z", "value"}); err != nil {
			return err
		}
		xs, ys, zs := f.Coords[0], f.Coords[1], f.Coords[2]
		for k, z := range zs {
			for j, y := range ys {
				for i, x := range xs {
					v := f.Values[(k*len(ys)+j)*len(xs)+i]
					if err := cw.Write([]string{num(x), num(y), num(z), num(v)}); err != nil {
						return err
					}
				}
			}
		}
	default:
		header := []string{"t"}
		if f.Kind != field.KindSeries {
			header = []string{"x", "y", "z"}[:f.Dim()]
		}
		header = append(header, "value")
		if f.Labels != nil {
			header = append(header, "label")
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for i, v := range f.Values {
			row := make([]string, 0, len(header))
			for _, col := range f.Coords {
				row = append(row, num(col[i]))
			}
			row = append(row, num(v))
			if f.Labels != nil {
				row = append(row, f.Labels[i])
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes f to a new file at path.
func ExportCSV(path string, f *field.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, f); err != nil {
		file.Close()
		return fmt.Errorf("store: export %s: %w", path, err)
	}
	return file.Close()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
