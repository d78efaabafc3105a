// Package feed provides rate feed sources. A source loads one version
// of the rate tables; the engine never reads a source directly, it
// consumes the immutable rates.Feed built from the loaded tables.
package feed

import (
	"context"

	"titlequote/core/rates"
	"titlequote/internal/config"
	"titlequote/internal/errors"
)

// Source loads the rate tables from a backing store.
type Source interface {
	// Load reads one complete version of the tables.
	Load(ctx context.Context) (rates.Tables, error)
}

// Open creates a source from feed configuration.
func Open(cfg config.FeedConfig) (Source, error) {
	switch cfg.Backend {
	case "file", "":
		return NewFileSource(cfg.Path), nil
	case "postgres":
		return NewPostgresSource(cfg.Postgres.DSN())
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported feed backend: %s", cfg.Backend)
	}
}

// LoadFeed loads tables from a source and builds the indexed feed.
func LoadFeed(ctx context.Context, src Source) (*rates.Feed, error) {
	tables, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return rates.NewFeed(tables)
}
