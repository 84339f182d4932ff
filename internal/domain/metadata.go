package domain

import "context"

// MovieMetadata is the canonical record returned by a metadata lookup.
// Zero values mean the upstream source did not provide the field.
type MovieMetadata struct {
	Title     string
	Director  string
	Year      int
	Rating    float64
	PosterURL string
}

// MetadataFetcher looks up canonical movie metadata by title.
// It returns ErrNoMatch when the title is unknown upstream.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, title string) (*MovieMetadata, error)
}
