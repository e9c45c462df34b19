package app

import (
	"manifest-archive-diff/internal/adapters"
	"manifest-archive-diff/internal/ports"
	"manifest-archive-diff/internal/types"
)

type Service struct {
	Manifest ports.ManifestReaderPort
	Output   ports.OutputPort
	Drift    ports.DriftReportPort
	Snaps    ports.SnapStorePort
	// Archive builds the archive client for a run; the credential comes
	// from the request, so the client cannot be a fixed adapter instance.
	Archive func(credential types.Credential) ports.ArchiveClientPort
}

func NewService() Service {
	manifest := adapters.NewManifestFileAdapter()
	return Service{
		Manifest: manifest,
		Output:   manifest,
		Drift:    adapters.NewDriftReportAdapter(),
		Snaps:    adapters.NewSnapStoreAdapter("", 0),
		Archive: func(credential types.Credential) ports.ArchiveClientPort {
			return adapters.NewLaunchpadClientAdapter("", credential, 0)
		},
	}
}
