package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot/vg"

	"github.com/RMahshie/nmrcentroid/internal/config"
	"github.com/RMahshie/nmrcentroid/internal/figure"
	"github.com/RMahshie/nmrcentroid/internal/processing"
	"github.com/RMahshie/nmrcentroid/internal/repository"
	"github.com/RMahshie/nmrcentroid/internal/repository/postgres"
	"github.com/RMahshie/nmrcentroid/internal/storage"
)

const prompt = "Enter the local path of your NMR CSV file: "

func main() {
	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, err := readPath(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read file path")
	}

	var repo repository.RunRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer closeDB(db)

		repo = postgres.NewPostgresRunRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare run ledger")
		}
	}

	var store storage.ArtifactStore
	if cfg.AWS.S3Bucket != "" {
		store, err = storage.NewS3Service(ctx, storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure artifact store")
		}
	}

	svc := processing.NewProcessingService(repo, store, processing.Options{
		PlotOutput: cfg.Plot.Output,
		Plot: figure.Options{
			Width:  vg.Length(cfg.Plot.WidthIn) * vg.Inch,
			Height: vg.Length(cfg.Plot.HeightIn) * vg.Inch,
		},
		Out: os.Stdout,
	})

	if _, err := svc.ProcessFile(ctx, path); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Integration failed")
	}
}

// readPath prompts on w and returns the trimmed line read from r
func readPath(r io.Reader, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database")
	}
}
