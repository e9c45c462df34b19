package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"manifest-archive-diff/internal/core"
	"manifest-archive-diff/internal/types"
)

// Diff runs the whole pipeline sequentially: parse the input manifest,
// resolve archive versions, resolve snap store versions, write the
// archive manifest. The writer only runs once both resolvers have fully
// completed, so a fatal failure never leaves partial output behind.
func (s Service) Diff(ctx context.Context, req DiffRequest) (DiffResult, error) {
	series := strings.TrimSpace(req.Series)
	if series == "" {
		return DiffResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("series is required")
	}
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return DiffResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest filename is required")
	}
	architecture := strings.TrimSpace(req.Architecture)
	if architecture == "" {
		return DiffResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("architecture is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return DiffResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("archive manifest filename is required")
	}
	ppas, err := parsePPARefs(req.PPAs)
	if err != nil {
		return DiffResult{}, err
	}

	manifest, err := s.Manifest.ReadManifest(manifestPath)
	if err != nil {
		return DiffResult{}, err
	}
	log.Debug().
		Int("binaries", len(manifest.Binaries)).
		Int("snaps", len(manifest.Snaps)).
		Msg("manifest parsed")

	credential := types.Credential{
		User:  strings.TrimSpace(req.LaunchpadUser),
		Token: strings.TrimSpace(req.LaunchpadToken),
	}
	names := make([]string, 0, len(manifest.Binaries))
	for _, binary := range manifest.Binaries {
		names = append(names, binary.Name)
	}
	archiveResolver := core.NewArchiveResolver(s.Archive(credential))
	binaries, err := archiveResolver.Resolve(ctx, core.ArchiveResolveParams{
		Series:       series,
		Architecture: architecture,
		Names:        names,
		PPAs:         ppas,
	})
	if err != nil {
		return DiffResult{}, err
	}

	snapResolver := core.NewSnapResolver(s.Snaps)
	snaps := snapResolver.Resolve(ctx, manifest.Snaps, architecture)

	if err := s.Output.WriteArchiveManifest(outputPath, binaries, snaps); err != nil {
		return DiffResult{}, err
	}

	if reportPath := strings.TrimSpace(req.DriftReportPath); reportPath != "" {
		recorded, err := s.Manifest.ReadRecordedVersions(manifestPath)
		if err != nil {
			return DiffResult{}, err
		}
		report := core.BuildDriftReport(series, architecture, recorded, binaries, snaps)
		if err := s.Drift.WriteDriftReport(reportPath, report); err != nil {
			return DiffResult{}, err
		}
	}

	return DiffResult{
		OutputPath:  outputPath,
		BinaryCount: len(binaries),
		SnapCount:   len(snaps),
	}, nil
}

// parsePPARefs accepts "owner/name" with an optional "ppa:" prefix.
func parsePPARefs(values []string) ([]types.PPARef, error) {
	refs := make([]types.PPARef, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimPrefix(strings.TrimSpace(value), "ppa:")
		parts := strings.Split(trimmed, "/")
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid PPA reference %q, expected owner/name", value))
		}
		refs = append(refs, types.PPARef{Owner: parts[0], Name: parts[1]})
	}
	return refs, nil
}
