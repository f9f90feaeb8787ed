package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for seed files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped seed file from disk.
func (l *fileLoader) Load(ctx context.Context, path string) (*Seed, error) {
	l.logger.Info().Str("file", path).Msg("loading catalogue seed file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	seed, err := Decode(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode seed file")
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products", len(seed.Products)).
		Int("users", len(seed.Users)).
		Msg("catalogue seed file loaded")

	return seed, nil
}
