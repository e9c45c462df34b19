package core

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"manifest-archive-diff/internal/ports"
	"manifest-archive-diff/internal/types"
)

// ArchiveResolver finds, for each binary package name, the highest version
// published across the fixed main-archive pockets and any supplementary
// repositories.
type ArchiveResolver struct {
	client ports.ArchiveClientPort
}

func NewArchiveResolver(client ports.ArchiveClientPort) ArchiveResolver {
	return ArchiveResolver{client: client}
}

type ArchiveResolveParams struct {
	Series       string
	Architecture string
	Names        []string
	PPAs         []types.PPARef
}

// Resolve queries the archive sequentially, one package at a time, one
// pocket at a time. Supplementary repositories are queried first, always
// under the Release pocket; a PPA query that errors or returns nothing
// contributes no candidates. Main-archive failures are fatal and abort the
// whole run, as is a rejected credential on a private PPA.
func (r ArchiveResolver) Resolve(ctx context.Context, params ArchiveResolveParams) ([]types.ResolvedBinaryVersion, error) {
	assert.NotEmpty(ctx, params.Series, "series must be set")
	assert.NotEmpty(ctx, params.Architecture, "architecture must be set")

	series, err := r.client.GetSeries(ctx, params.Series)
	if err != nil {
		return nil, err
	}
	archSeries, err := r.client.GetArchSeries(ctx, series, params.Architecture)
	if err != nil {
		return nil, err
	}

	resolved := make([]types.ResolvedBinaryVersion, 0, len(params.Names))
	for _, name := range params.Names {
		// Manifests may qualify names with an architecture tag; the
		// architecture parameter is authoritative.
		name = strings.ReplaceAll(name, ":"+params.Architecture, "")
		var candidates []string

		for _, ppa := range params.PPAs {
			log.Info().Str("ppa", ppa.String()).Msg("using pocket \"Release\" when querying PPA")
			binaries, err := r.client.GetPublishedBinaries(ctx, types.PPAArchive(ppa), ports.BinaryQuery{
				Name:       name,
				ArchSeries: archSeries,
				Pocket:     types.PocketRelease,
				Status:     types.StatusPublished,
			})
			if err != nil {
				if errbuilder.CodeOf(err) == errbuilder.CodePermissionDenied {
					return nil, err
				}
				log.Warn().
					Str("ppa", ppa.String()).
					Str("package", name).
					Err(err).
					Msg("PPA query failed, contributes no candidates")
				continue
			}
			for _, binary := range binaries {
				log.Info().
					Str("status", string(binary.Status)).
					Str("package", binary.Name).
					Str("version", binary.Version).
					Str("ppa", ppa.String()).
					Msg("found publication in PPA")
				candidates = append(candidates, binary.Version)
			}
		}

		for _, pocket := range types.ArchivePockets {
			binaries, err := r.client.GetPublishedBinaries(ctx, types.PrimaryArchive(), ports.BinaryQuery{
				Name:       name,
				ArchSeries: archSeries,
				Pocket:     pocket,
				Status:     types.StatusPublished,
			})
			if err != nil {
				return nil, err
			}
			for _, binary := range binaries {
				log.Info().
					Str("status", string(binary.Status)).
					Str("package", binary.Name).
					Str("version", binary.Version).
					Str("pocket", string(binary.Pocket)).
					Msg("found publication in archive")
				candidates = append(candidates, binary.Version)
			}
		}

		maxVersion := MaxVersion(candidates)
		log.Info().Str("package", name).Str("max_version", maxVersion).Msg("max version found in archive")
		resolved = append(resolved, types.ResolvedBinaryVersion{Name: name, MaxVersion: maxVersion})
	}
	return resolved, nil
}
