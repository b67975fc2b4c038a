package source

import (
	"context"

	"leadscout-engine/internal/domain"
)

// Query is the normalized search request handed to a result source.
// Keywords is always set; the remaining filters are optional.
type Query struct {
	Keywords string
	Location string
	Industry string
	Size     string
	Limit    int
}

// Source produces candidate lead records for a query. Implementations
// own their timeout and retry policy; a failure must surface as a
// wrapped domain.ErrSourceUnavailable, never as a silent empty list.
type Source interface {
	Name() string
	FetchPeople(ctx context.Context, q Query) ([]domain.RawRecord, error)
	FetchCompanies(ctx context.Context, q Query) ([]domain.RawRecord, error)
}
