package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"manifest-archive-diff/internal/adapters"
	"manifest-archive-diff/internal/app"
	"manifest-archive-diff/internal/ports"
	"manifest-archive-diff/internal/types"
)

type diffOptions struct {
	Series          string
	ManifestFile    string
	Architecture    string
	PPAs            []string
	LaunchpadUser   string
	ArchiveManifest string
	DriftReport     string
}

func addDiffFlags(cmd *cobra.Command, opts *diffOptions) {
	cmd.Flags().StringVar(&opts.Series, "series", "", "The Ubuntu series eg. '20.04' or 'focal'")
	cmd.Flags().StringVar(&opts.ManifestFile, "manifest-filename", "", "Package version manifest to compare against the archive")
	cmd.Flags().StringVar(&opts.Architecture, "architecture", "amd64", "Architecture tag to query, or \"source\" for source packages")
	cmd.Flags().StringSliceVar(&opts.PPAs, "ppa", nil, "Additional PPA to query, format owner/name (repeatable)")
	cmd.Flags().StringVar(&opts.LaunchpadUser, "launchpad-user", "", "Launchpad username for authenticated queries of private PPAs")
	cmd.Flags().StringVar(&opts.ArchiveManifest, "archive-manifest-filename", "", "Filename to write the archive versions to")
	cmd.Flags().StringVar(&opts.DriftReport, "drift-report-filename", "", "Optional YAML drift report comparing manifest and archive versions")

	_ = viper.BindPFlag("series", cmd.Flags().Lookup("series"))
	_ = viper.BindPFlag("manifest_filename", cmd.Flags().Lookup("manifest-filename"))
	_ = viper.BindPFlag("architecture", cmd.Flags().Lookup("architecture"))
	_ = viper.BindPFlag("ppas", cmd.Flags().Lookup("ppa"))
	_ = viper.BindPFlag("launchpad_user", cmd.Flags().Lookup("launchpad-user"))
	_ = viper.BindPFlag("archive_manifest_filename", cmd.Flags().Lookup("archive-manifest-filename"))
	_ = viper.BindPFlag("drift_report_filename", cmd.Flags().Lookup("drift-report-filename"))
}

func runDiff(ctx context.Context, cmd *cobra.Command, opts diffOptions) error {
	service := newAppService()
	result, err := service.Diff(ctx, app.DiffRequest{
		Series:          resolveString(cmd, opts.Series, "series", "series"),
		ManifestPath:    resolveString(cmd, opts.ManifestFile, "manifest_filename", "manifest-filename"),
		Architecture:    resolveString(cmd, opts.Architecture, "architecture", "architecture"),
		PPAs:            resolveStrings(cmd, opts.PPAs, "ppas", "ppa"),
		LaunchpadUser:   resolveString(cmd, opts.LaunchpadUser, "launchpad_user", "launchpad-user"),
		LaunchpadToken:  viper.GetString("launchpad_token"),
		OutputPath:      resolveString(cmd, opts.ArchiveManifest, "archive_manifest_filename", "archive-manifest-filename"),
		DriftReportPath: resolveString(cmd, opts.DriftReport, "drift_report_filename", "drift-report-filename"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Manifest written to %s.\n", result.OutputPath)
	return nil
}

// newAppService wires the default service, honoring config overrides for
// the remote endpoints and the HTTP timeout.
func newAppService() app.Service {
	service := app.NewService()
	launchpadURL := viper.GetString("launchpad_api_url")
	snapStoreURL := viper.GetString("snap_store_url")
	timeoutSec := viper.GetInt("http_timeout")
	service.Archive = func(credential types.Credential) ports.ArchiveClientPort {
		return adapters.NewLaunchpadClientAdapter(launchpadURL, credential, timeoutSec)
	}
	service.Snaps = adapters.NewSnapStoreAdapter(snapStoreURL, timeoutSec)
	return service
}
