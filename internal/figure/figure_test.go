package figure

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/RMahshie/nmrcentroid/pkg/models"
)

func testSpectrum() *models.Spectrum {
	return &models.Spectrum{
		XLabel:    "ppm",
		YLabel:    "intensity",
		Shift:     []float64{6.5, 6.75, 7.0, 7.25, 7.5},
		Intensity: []float64{0, 1, 2, 1, 0},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		centroid float64
	}{
		{name: "finite centroid", centroid: 7.0},
		{name: "nan centroid", centroid: math.NaN()},
		{name: "centroid outside data range", centroid: 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(testSpectrum(), models.IntegrationResult{AreaY: 1, AreaXY: 7, Centroid: tt.centroid})
			require.NoError(t, err)

			assert.Equal(t, "Full NMR Spectrum Integration and Centroid", p.Title.Text)
			assert.Equal(t, "Chemical Shift (ppm)", p.X.Label.Text)
			assert.Equal(t, "Intensity (a.u.)", p.Y.Label.Text)

			_, err = p.WriterTo(2*vg.Inch, 2*vg.Inch, "png")
			assert.NoError(t, err)
		})
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := New(&models.Spectrum{}, models.IntegrationResult{})
	assert.ErrorIs(t, err, ErrEmptySpectrum)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum_centroid.png")
	opts := Options{Width: 4 * vg.Inch, Height: 2.5 * vg.Inch}

	err := Save(path, testSpectrum(), models.IntegrationResult{AreaY: 1, AreaXY: 7, Centroid: 7}, opts)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, cfg.Height)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "run1_centroid.png"), DefaultPath(filepath.Join("data", "run1.csv")))
	assert.Equal(t, "ethanol_centroid.png", DefaultPath("ethanol.xlsx"))
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 8*vg.Inch, opts.Width)
	assert.Equal(t, 5*vg.Inch, opts.Height)
}
