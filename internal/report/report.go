package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/RMahshie/nmrcentroid/pkg/models"
)

// Columns prints which input columns were used as x and y
func Columns(w io.Writer, s *models.Spectrum) error {
	_, err := fmt.Fprintf(w, "Using columns: X = %s, Y = %s\n", s.XLabel, s.YLabel)
	return err
}

// Results prints the full-range integrals and centroid to six decimal places
func Results(w io.Writer, r models.IntegrationResult) error {
	_, err := fmt.Fprintf(w,
		"\nFull-Range Integration Results:\n"+
			"∫y dx     = %s\n"+
			"∫x·y dx   = %s\n"+
			"⟨x⟩ (ppm) = %s\n",
		Format(r.AreaY, 6), Format(r.AreaXY, 6), Format(r.Centroid, 6))
	return err
}

// Format renders v with prec decimals, spelling non-finite values as
// "nan", "inf" and "-inf"
func Format(v float64, prec int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
