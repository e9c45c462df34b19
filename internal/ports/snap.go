package ports

import "context"

// SnapStorePort answers "what revision does this channel publish right
// now" for a single snap. One request, at most one authoritative answer.
type SnapStorePort interface {
	LatestRevision(ctx context.Context, name string, channel string, architecture string) (int, error)
}
