package processing

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/nmrcentroid/internal/loader"
	"github.com/RMahshie/nmrcentroid/pkg/models"
)

// MockRunRepository implements repository.RunRepository for testing
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRunRepository) Create(ctx context.Context, run *models.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Run), args.Error(1)
}

func (m *MockRunRepository) ListBySource(ctx context.Context, sourcePath string) ([]*models.Run, error) {
	args := m.Called(ctx, sourcePath)
	return args.Get(0).([]*models.Run), args.Error(1)
}

// MockArtifactStore implements storage.ArtifactStore for testing
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) UploadFile(ctx context.Context, key string, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockArtifactStore) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockArtifactStore) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// writeSpectrum writes a descending-ppm triangular pulse centred at 2.0 ppm
// with unit area
func writeSpectrum(t *testing.T, dir string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("ppm,intensity\n")
	for i := 40; i >= 0; i-- {
		x := float64(i) * 0.1
		y := math.Max(0, 2.5*(1-math.Abs(x-2)/0.4))
		b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
		b.WriteString(",")
		b.WriteString(strconv.FormatFloat(y, 'f', -1, 64))
		b.WriteString("\n")
	}

	path := filepath.Join(dir, "pulse.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestProcessFile(t *testing.T) {
	tests := []struct {
		name      string
		withRepo  bool
		withStore bool
		mockSetup func(*MockRunRepository, *MockArtifactStore)
		wantErr   bool
	}{
		{
			name: "no sinks configured",
		},
		{
			name:      "ledger and artifact store",
			withRepo:  true,
			withStore: true,
			mockSetup: func(repo *MockRunRepository, store *MockArtifactStore) {
				store.On("UploadFile", mock.Anything,
					mock.MatchedBy(func(key string) bool { return strings.HasSuffix(key, "/spectrum.png") }),
					"image/png", mock.Anything).Return(nil)
				store.On("UploadFile", mock.Anything,
					mock.MatchedBy(func(key string) bool { return strings.HasSuffix(key, "/results.json") }),
					"application/json", mock.Anything).Return(nil)
				store.On("GenerateDownloadURL", mock.Anything,
					mock.MatchedBy(func(key string) bool { return strings.HasSuffix(key, "/spectrum.png") })).
					Return("https://artifacts.example.com/spectrum.png", nil)
				repo.On("Create", mock.Anything, mock.MatchedBy(func(run *models.Run) bool {
					return run.PlotKey != nil && run.ResultsKey != nil
				})).Return(nil)
			},
		},
		{
			name:     "ledger failure is fatal",
			withRepo: true,
			mockSetup: func(repo *MockRunRepository, store *MockArtifactStore) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Run")).Return(assert.AnError)
			},
			wantErr: true,
		},
		{
			name:      "upload failure is fatal",
			withStore: true,
			mockSetup: func(repo *MockRunRepository, store *MockArtifactStore) {
				store.On("UploadFile", mock.Anything, mock.Anything, "image/png", mock.Anything).Return(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeSpectrum(t, dir)
			plotPath := filepath.Join(dir, "out.png")

			mockRepo := &MockRunRepository{}
			mockStore := &MockArtifactStore{}
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo, mockStore)
			}

			var out bytes.Buffer
			opts := Options{PlotOutput: plotPath, Out: &out}

			svc := NewProcessingService(nil, nil, opts)
			switch {
			case tt.withRepo && tt.withStore:
				svc = NewProcessingService(mockRepo, mockStore, opts)
			case tt.withRepo:
				svc = NewProcessingService(mockRepo, nil, opts)
			case tt.withStore:
				svc = NewProcessingService(nil, mockStore, opts)
			}

			run, err := svc.ProcessFile(context.Background(), input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, input, run.SourcePath)
				assert.Equal(t, plotPath, run.PlotPath)
				assert.Equal(t, 41, run.Result.Points)
				assert.InDelta(t, 1.0, run.Result.AreaY, 1e-9)
				assert.InDelta(t, 2.0, run.Result.Centroid, 1e-9)
				_, err := uuid.Parse(run.ID)
				assert.NoError(t, err)

				text := out.String()
				assert.True(t, strings.HasPrefix(text, "Using columns: X = ppm, Y = intensity\n"))
				assert.Contains(t, text, "∫y dx     = 1.000000\n")
				assert.Contains(t, text, "⟨x⟩ (ppm) = 2.000000\n")
			}

			assert.FileExists(t, plotPath)
			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestProcessFile_MissingFile(t *testing.T) {
	var out bytes.Buffer
	svc := NewProcessingService(nil, nil, Options{Out: &out})

	_, err := svc.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))

	assert.ErrorIs(t, err, loader.ErrFileNotFound)
	assert.Empty(t, out.String())
}

func TestProcessFile_DefaultPlotPath(t *testing.T) {
	dir := t.TempDir()
	input := writeSpectrum(t, dir)

	var out bytes.Buffer
	svc := NewProcessingService(nil, nil, Options{Out: &out})

	run, err := svc.ProcessFile(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "pulse_centroid.png"), run.PlotPath)
	assert.FileExists(t, run.PlotPath)
}
