package core

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"manifest-archive-diff/internal/ports"
	"manifest-archive-diff/internal/types"
)

// SnapResolver finds the revision currently published for each snap
// name/channel pair. Unlike the archive resolver there is no aggregation
// step: each store request returns at most one authoritative answer from
// the channel.
type SnapResolver struct {
	store ports.SnapStorePort
}

func NewSnapResolver(store ports.SnapStorePort) SnapResolver {
	return SnapResolver{store: store}
}

// Resolve looks up each snap in input order. A failed lookup drops that
// entry and continues with the next; it never aborts the run.
func (r SnapResolver) Resolve(ctx context.Context, refs []types.SnapRef, architecture string) []types.ResolvedSnapVersion {
	resolved := make([]types.ResolvedSnapVersion, 0, len(refs))
	for _, ref := range refs {
		revision, err := r.store.LatestRevision(ctx, ref.Name, ref.Channel, architecture)
		if err != nil {
			log.Warn().
				Str("snap", ref.Name).
				Str("channel", ref.Channel).
				Str("architecture", architecture).
				Err(err).
				Msg("failed to get info on snap")
			continue
		}
		resolved = append(resolved, types.ResolvedSnapVersion{
			Name:     ref.Name,
			Channel:  ref.Channel,
			Revision: strconv.Itoa(revision),
		})
	}
	return resolved
}
