// Package figure renders a spectrum, its integrated area and centroid marker to
// an image file.
package figure

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/RMahshie/nmrcentroid/pkg/models"
)

// ErrEmptySpectrum is returned when there is nothing to draw
var ErrEmptySpectrum = errors.New("spectrum has no samples")

var (
	spectrumColor = color.Black
	fillColor     = color.NRGBA{R: 255, G: 165, A: 77} // orange, alpha 0.3
	centroidColor = color.NRGBA{R: 255, A: 255}
)

// Options controls the figure size
type Options struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions returns an 8x5 inch figure
func DefaultOptions() Options {
	return Options{Width: 8 * vg.Inch, Height: 5 * vg.Inch}
}

// DefaultPath returns "<dir>/<stem>_centroid.png" for an input file
func DefaultPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), stem+"_centroid.png")
}

// New builds the figure for a sorted spectrum and its integration result
func New(s *models.Spectrum, r models.IntegrationResult) (*plot.Plot, error) {
	if s.Len() == 0 {
		return nil, ErrEmptySpectrum
	}

	p := plot.New()
	p.Title.Text = "Full NMR Spectrum Integration and Centroid"
	p.X.Label.Text = "Chemical Shift (ppm)"
	p.Y.Label.Text = "Intensity (a.u.)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, 0, s.Len())
	for _, pt := range s.Points() {
		xys = append(xys, plotter.XY{X: pt.Shift, Y: pt.Intensity})
	}

	// close the region against the zero baseline
	region := make(plotter.XYs, 0, len(xys)+2)
	region = append(region, plotter.XY{X: xys[0].X})
	region = append(region, xys...)
	region = append(region, plotter.XY{X: xys[len(xys)-1].X})

	area, err := plotter.NewPolygon(region)
	if err != nil {
		return nil, fmt.Errorf("failed to build integrated region: %w", err)
	}
	area.Color = fillColor
	area.LineStyle.Width = 0

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("failed to build spectrum line: %w", err)
	}
	line.LineStyle.Color = spectrumColor
	line.LineStyle.Width = vg.Points(1.2)

	p.Add(area, line)
	p.Legend.Add("NMR Spectrum", line)
	p.Legend.Add("Integrated region", area)

	if math.IsNaN(r.Centroid) || math.IsInf(r.Centroid, 0) {
		return p, nil
	}

	maxY := floats.Max(s.Intensity)
	minY := math.Min(0, floats.Min(s.Intensity))

	marker, err := plotter.NewLine(plotter.XYs{{X: r.Centroid, Y: minY}, {X: r.Centroid, Y: maxY}})
	if err != nil {
		return nil, fmt.Errorf("failed to build centroid marker: %w", err)
	}
	marker.LineStyle.Color = centroidColor
	marker.LineStyle.Width = vg.Points(1.2)
	marker.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: r.Centroid, Y: maxY * 0.8}},
		Labels: []string{fmt.Sprintf("<x> = %.3f", r.Centroid)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build centroid label: %w", err)
	}
	label.TextStyle[0].Color = centroidColor
	label.Offset = vg.Point{X: vg.Points(4)}

	p.Add(marker, label)
	p.Legend.Add(fmt.Sprintf("Centroid = %.3f", r.Centroid), marker)

	return p, nil
}

// Save renders the figure to path; the image format follows the extension
func Save(path string, s *models.Spectrum, r models.IntegrationResult, opts Options) error {
	p, err := New(s, r)
	if err != nil {
		return err
	}

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}

	return nil
}
