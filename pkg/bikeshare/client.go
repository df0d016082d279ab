package bikeshare

import (
	"context"

	"github.com/jusunglee/bikeshare-go/internal/models"
	"github.com/jusunglee/bikeshare-go/internal/stats"
	"github.com/jusunglee/bikeshare-go/internal/store"
)

// Client defines the interface for exploring bike share trips
// Every call reads the city source again; nothing is cached between calls
type Client interface {
	Cities() []models.City

	Load(ctx context.Context, f models.Filter) (*store.Table, error)
	Summary(ctx context.Context, f models.Filter) (*stats.Summary, error)
	Preview(ctx context.Context, f models.Filter, rows int) ([]models.Trip, error)
}

// Config holds configuration for the bike share client
// CatalogFile is optional; the default three-city catalog is used when empty
type Config struct {
	DataDir     string
	CatalogFile string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		DataDir: "data",
	}
}
