package ports

import (
	"context"

	"manifest-archive-diff/internal/types"
)

// BinaryQuery selects publications of one package within an archive. Name
// must match exactly; no prefix or substring matching.
type BinaryQuery struct {
	Name       string
	ArchSeries types.DistroArchSeries
	Pocket     types.Pocket
	Status     types.PublicationStatus
}

// ArchiveClientPort is the narrow client abstraction over the archive
// service's series/arch-series/publication lookups, so resolution can be
// mocked deterministically in tests.
type ArchiveClientPort interface {
	GetSeries(ctx context.Context, name string) (types.DistroSeries, error)
	GetArchSeries(ctx context.Context, series types.DistroSeries, archTag string) (types.DistroArchSeries, error)
	GetPublishedBinaries(ctx context.Context, archive types.ArchiveRef, query BinaryQuery) ([]types.PublishedBinary, error)
}
