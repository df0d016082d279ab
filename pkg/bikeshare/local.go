package bikeshare

import (
	"context"

	"github.com/jusunglee/bikeshare-go/internal/config"
	"github.com/jusunglee/bikeshare-go/internal/loader"
	"github.com/jusunglee/bikeshare-go/internal/models"
	"github.com/jusunglee/bikeshare-go/internal/stats"
	"github.com/jusunglee/bikeshare-go/internal/store"
)

// LocalClient implements the Client interface over CSV files on disk
type LocalClient struct {
	loader *loader.Loader
}

// NewLocal creates a new local client
// Fails only when the catalog file cannot be read or is invalid
func NewLocal(cfg Config) (*LocalClient, error) {
	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	return &LocalClient{
		loader: loader.New(catalog, cfg.DataDir),
	}, nil
}

func (c *LocalClient) Cities() []models.City {
	return c.loader.Cities()
}

func (c *LocalClient) Load(ctx context.Context, f models.Filter) (*store.Table, error) {
	return c.loader.Load(ctx, f)
}

func (c *LocalClient) Summary(ctx context.Context, f models.Filter) (*stats.Summary, error) {
	table, err := c.loader.Load(ctx, f)
	if err != nil {
		return nil, err
	}
	return stats.Summarize(ctx, f, table)
}

func (c *LocalClient) Preview(ctx context.Context, f models.Filter, rows int) ([]models.Trip, error) {
	table, err := c.loader.Load(ctx, f)
	if err != nil {
		return nil, err
	}
	return table.Head(rows), nil
}
