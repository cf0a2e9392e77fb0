// Package integration computes full-range integrals and the intensity-weighted
// centroid of a sampled spectrum.
package integration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RMahshie/nmrcentroid/pkg/models"
)

// Sort reorders both sequences of s ascending by shift
func Sort(s *models.Spectrum) error {
	if len(s.Shift) != len(s.Intensity) {
		return ErrLengthMismatch
	}

	x := make([]float64, len(s.Shift))
	copy(x, s.Shift)
	inds := make([]int, len(x))
	floats.Argsort(x, inds)

	y := make([]float64, len(inds))
	for i, j := range inds {
		y[i] = s.Intensity[j]
	}

	s.Shift = x
	s.Intensity = y
	return nil
}

// Centroid returns areaXY / areaY, or NaN when areaY is exactly zero
func Centroid(areaXY, areaY float64) float64 {
	if areaY == 0 {
		return math.NaN()
	}
	return areaXY / areaY
}

// Integrate sorts s in place and computes ∫y dx, ∫x·y dx and the centroid
func Integrate(s *models.Spectrum) (models.IntegrationResult, error) {
	if err := Sort(s); err != nil {
		return models.IntegrationResult{}, err
	}

	areaY, err := Simpson(s.Shift, s.Intensity)
	if err != nil {
		return models.IntegrationResult{}, fmt.Errorf("failed to integrate intensity: %w", err)
	}

	xy := floats.MulTo(make([]float64, s.Len()), s.Shift, s.Intensity)
	areaXY, err := Simpson(s.Shift, xy)
	if err != nil {
		return models.IntegrationResult{}, fmt.Errorf("failed to integrate weighted intensity: %w", err)
	}

	return models.IntegrationResult{
		AreaY:    areaY,
		AreaXY:   areaXY,
		Centroid: Centroid(areaXY, areaY),
		Points:   s.Len(),
	}, nil
}
