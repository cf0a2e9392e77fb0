package models

import (
	"encoding/json"
	"math"
	"time"
)

// Run represents one execution of the integration pipeline (for internal use)
type Run struct {
	ID         string            `json:"id"`
	SourcePath string            `json:"source_path"`
	XLabel     string            `json:"x_label"`
	YLabel     string            `json:"y_label"`
	Result     IntegrationResult `json:"result"`
	PlotPath   string            `json:"plot_path"`
	PlotKey    *string           `json:"plot_key,omitempty"`
	ResultsKey *string           `json:"results_key,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// runJSON mirrors Run with a nullable centroid, since encoding/json rejects NaN
type runJSON struct {
	ID         string    `json:"id"`
	SourcePath string    `json:"source_path"`
	XLabel     string    `json:"x_label"`
	YLabel     string    `json:"y_label"`
	AreaY      float64   `json:"area_y"`
	AreaXY     float64   `json:"area_xy"`
	Centroid   *float64  `json:"centroid"`
	Points     int       `json:"points"`
	PlotPath   string    `json:"plot_path"`
	PlotKey    *string   `json:"plot_key,omitempty"`
	ResultsKey *string   `json:"results_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// MarshalJSON encodes a NaN centroid as null
func (r Run) MarshalJSON() ([]byte, error) {
	out := runJSON{
		ID:         r.ID,
		SourcePath: r.SourcePath,
		XLabel:     r.XLabel,
		YLabel:     r.YLabel,
		AreaY:      r.Result.AreaY,
		AreaXY:     r.Result.AreaXY,
		Points:     r.Result.Points,
		PlotPath:   r.PlotPath,
		PlotKey:    r.PlotKey,
		ResultsKey: r.ResultsKey,
		CreatedAt:  r.CreatedAt,
	}
	if !math.IsNaN(r.Result.Centroid) {
		c := r.Result.Centroid
		out.Centroid = &c
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a null centroid as NaN
func (r *Run) UnmarshalJSON(data []byte) error {
	var in runJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = Run{
		ID:         in.ID,
		SourcePath: in.SourcePath,
		XLabel:     in.XLabel,
		YLabel:     in.YLabel,
		Result: IntegrationResult{
			AreaY:    in.AreaY,
			AreaXY:   in.AreaXY,
			Centroid: math.NaN(),
			Points:   in.Points,
		},
		PlotPath:   in.PlotPath,
		PlotKey:    in.PlotKey,
		ResultsKey: in.ResultsKey,
		CreatedAt:  in.CreatedAt,
	}
	if in.Centroid != nil {
		r.Result.Centroid = *in.Centroid
	}
	return nil
}
