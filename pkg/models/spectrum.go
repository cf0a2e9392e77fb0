package models

// SpectrumPoint represents a single spectral sample
type SpectrumPoint struct {
	Shift     float64 `json:"shift" doc:"Chemical shift in ppm"`
	Intensity float64 `json:"intensity" doc:"Intensity in arbitrary units"`
}

// Spectrum holds two equal-length sequences read from the first two columns
// of an input table. Shift[i] corresponds to Intensity[i].
type Spectrum struct {
	XLabel    string    `json:"x_label"`
	YLabel    string    `json:"y_label"`
	Shift     []float64 `json:"shift"`
	Intensity []float64 `json:"intensity"`
}

// Len returns the number of samples
func (s *Spectrum) Len() int {
	return len(s.Shift)
}

// Points returns the samples as shift/intensity pairs
func (s *Spectrum) Points() []SpectrumPoint {
	points := make([]SpectrumPoint, len(s.Shift))
	for i := range s.Shift {
		points[i] = SpectrumPoint{Shift: s.Shift[i], Intensity: s.Intensity[i]}
	}
	return points
}

// IntegrationResult holds the full-range integrals and the centroid
type IntegrationResult struct {
	AreaY    float64 `json:"area_y" doc:"Integral of intensity over shift"`
	AreaXY   float64 `json:"area_xy" doc:"Integral of shift times intensity over shift"`
	Centroid float64 `json:"centroid" doc:"Intensity-weighted mean shift in ppm, NaN when AreaY is zero"`
	Points   int     `json:"points" doc:"Number of samples integrated"`
}
