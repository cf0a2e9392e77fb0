package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/nmrcentroid/internal/figure"
	"github.com/RMahshie/nmrcentroid/internal/integration"
	"github.com/RMahshie/nmrcentroid/internal/loader"
	"github.com/RMahshie/nmrcentroid/internal/report"
	"github.com/RMahshie/nmrcentroid/internal/repository"
	"github.com/RMahshie/nmrcentroid/internal/storage"
	"github.com/RMahshie/nmrcentroid/pkg/models"
)

type ProcessingService interface {
	ProcessFile(ctx context.Context, path string) (*models.Run, error)
}

// Options configures where results go. Out receives the console report.
type Options struct {
	PlotOutput string // empty means next to the input file
	Plot       figure.Options
	Out        io.Writer
}

type processingService struct {
	repository repository.RunRepository // nil disables the run ledger
	store      storage.ArtifactStore    // nil disables artifact upload
	opts       Options
	now        func() time.Time
}

func NewProcessingService(repo repository.RunRepository, store storage.ArtifactStore, opts Options) ProcessingService {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Plot.Width == 0 || opts.Plot.Height == 0 {
		opts.Plot = figure.DefaultOptions()
	}

	return &processingService{
		repository: repo,
		store:      store,
		opts:       opts,
		now:        time.Now,
	}
}

func (s *processingService) ProcessFile(ctx context.Context, path string) (*models.Run, error) {
	start := s.now()
	runID := uuid.New()
	logger := log.With().Str("runID", runID.String()).Str("path", path).Logger()

	// Step 1: Load the first two columns
	spectrum, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("points", spectrum.Len()).Msg("Spectrum loaded")

	if err := report.Columns(s.opts.Out, spectrum); err != nil {
		return nil, err
	}

	// Step 2: Sort by shift and integrate over the full range
	result, err := integration.Integrate(spectrum)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Float64("areaY", result.AreaY).
		Float64("areaXY", result.AreaXY).
		Float64("centroid", result.Centroid).
		Msg("Spectrum integrated")

	// Step 3: Render the figure
	plotPath := s.opts.PlotOutput
	if plotPath == "" {
		plotPath = figure.DefaultPath(path)
	}
	if err := figure.Save(plotPath, spectrum, result, s.opts.Plot); err != nil {
		return nil, err
	}
	logger.Info().Str("plot", plotPath).Msg("Plot written")

	// Step 4: Print results
	if err := report.Results(s.opts.Out, result); err != nil {
		return nil, err
	}

	run := &models.Run{
		ID:         runID.String(),
		SourcePath: path,
		XLabel:     spectrum.XLabel,
		YLabel:     spectrum.YLabel,
		Result:     result,
		PlotPath:   plotPath,
		CreatedAt:  start,
	}

	// Step 5: Upload artifacts
	if s.store != nil {
		if err := s.uploadArtifacts(ctx, run); err != nil {
			return nil, err
		}
		plotURL, err := s.store.GenerateDownloadURL(ctx, *run.PlotKey)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("plotKey", *run.PlotKey).
			Str("resultsKey", *run.ResultsKey).
			Str("plotURL", plotURL).
			Msg("Artifacts uploaded")
	}

	// Step 6: Record the run
	if s.repository != nil {
		if err := s.repository.Create(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		logger.Info().Msg("Run recorded")
	}

	logger.Debug().Dur("elapsed", s.now().Sub(start)).Msg("Run complete")
	return run, nil
}

func (s *processingService) uploadArtifacts(ctx context.Context, run *models.Run) error {
	plotData, err := os.ReadFile(run.PlotPath)
	if err != nil {
		return fmt.Errorf("failed to read plot: %w", err)
	}

	ext := filepath.Ext(run.PlotPath)
	plotKey := fmt.Sprintf("runs/%s/spectrum%s", run.ID, ext)
	resultsKey := fmt.Sprintf("runs/%s/results.json", run.ID)

	if err := s.store.UploadFile(ctx, plotKey, storage.ContentTypeFor(ext), plotData); err != nil {
		return err
	}
	run.PlotKey = &plotKey
	run.ResultsKey = &resultsKey

	doc, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	return s.store.UploadFile(ctx, resultsKey, "application/json", doc)
}
