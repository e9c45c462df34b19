package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"manifest-archive-diff/internal/ports"
	"manifest-archive-diff/internal/shared"
	"manifest-archive-diff/internal/types"
)

// LaunchpadClientAdapter talks to the Launchpad web API over plain HTTPS.
// It navigates the distribution -> series -> arch-series -> archive graph
// through explicit lookups instead of a live object traversal, so every
// call can be pointed at a fake server in tests.
type LaunchpadClientAdapter struct {
	BaseURL      string
	Distribution string
	Credential   types.Credential
	Timeout      time.Duration
}

const defaultLaunchpadBaseURL = "https://api.launchpad.net/devel"
const defaultLaunchpadDistribution = "ubuntu"
const defaultLaunchpadTimeout = 60 * time.Second

func NewLaunchpadClientAdapter(baseURL string, credential types.Credential, timeoutSec int) LaunchpadClientAdapter {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultLaunchpadBaseURL
	}
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultLaunchpadTimeout
	}
	return LaunchpadClientAdapter{
		BaseURL:      base,
		Distribution: defaultLaunchpadDistribution,
		Credential:   credential,
		Timeout:      timeout,
	}
}

type distroSeriesPayload struct {
	Name     string `json:"name"`
	SelfLink string `json:"self_link"`
}

type distroArchSeriesPayload struct {
	ArchitectureTag string `json:"architecture_tag"`
	SelfLink        string `json:"self_link"`
}

type publicationPayload struct {
	BinaryPackageName    string `json:"binary_package_name"`
	BinaryPackageVersion string `json:"binary_package_version"`
	SourcePackageName    string `json:"source_package_name"`
	SourcePackageVersion string `json:"source_package_version"`
	Pocket               string `json:"pocket"`
	Status               string `json:"status"`
}

type publicationCollectionPayload struct {
	Entries            []publicationPayload `json:"entries"`
	TotalSize          int                  `json:"total_size"`
	NextCollectionLink string               `json:"next_collection_link"`
}

func (a LaunchpadClientAdapter) GetSeries(ctx context.Context, name string) (types.DistroSeries, error) {
	if strings.TrimSpace(name) == "" {
		return types.DistroSeries{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("series is required")
	}
	endpoint := fmt.Sprintf("%s/%s/%s", a.BaseURL, a.Distribution, url.PathEscape(name))
	payload := distroSeriesPayload{}
	if err := a.getJSON(ctx, endpoint, &payload); err != nil {
		return types.DistroSeries{}, err
	}
	if payload.SelfLink == "" {
		payload.SelfLink = endpoint
	}
	if payload.Name == "" {
		payload.Name = name
	}
	return types.DistroSeries{Name: payload.Name, SelfLink: payload.SelfLink}, nil
}

func (a LaunchpadClientAdapter) GetArchSeries(ctx context.Context, series types.DistroSeries, archTag string) (types.DistroArchSeries, error) {
	if strings.TrimSpace(archTag) == "" {
		return types.DistroArchSeries{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("architecture is required")
	}
	// "source" is not a distro arch series on the service; it selects
	// source-package publications scoped to the series itself.
	if archTag == types.ArchitectureSource {
		return types.DistroArchSeries{
			ArchTag:    archTag,
			SelfLink:   series.SelfLink,
			SeriesLink: series.SelfLink,
			Source:     true,
		}, nil
	}
	endpoint := fmt.Sprintf("%s/%s/%s/%s", a.BaseURL, a.Distribution, url.PathEscape(series.Name), url.PathEscape(archTag))
	payload := distroArchSeriesPayload{}
	if err := a.getJSON(ctx, endpoint, &payload); err != nil {
		return types.DistroArchSeries{}, err
	}
	if payload.SelfLink == "" {
		payload.SelfLink = endpoint
	}
	return types.DistroArchSeries{
		ArchTag:    archTag,
		SelfLink:   payload.SelfLink,
		SeriesLink: series.SelfLink,
	}, nil
}

func (a LaunchpadClientAdapter) GetPublishedBinaries(ctx context.Context, archive types.ArchiveRef, query ports.BinaryQuery) ([]types.PublishedBinary, error) {
	endpoint, err := a.publicationURL(archive, query)
	if err != nil {
		return nil, err
	}
	var published []types.PublishedBinary
	next := endpoint
	for next != "" {
		payload := publicationCollectionPayload{}
		if err := a.getJSON(ctx, next, &payload); err != nil {
			return nil, err
		}
		for _, entry := range payload.Entries {
			published = append(published, publicationFromPayload(entry, query.ArchSeries.Source))
		}
		next = payload.NextCollectionLink
	}
	log.Debug().
		Str("package", query.Name).
		Str("pocket", string(query.Pocket)).
		Int("publications", len(published)).
		Msg("archive query completed")
	return published, nil
}

func (a LaunchpadClientAdapter) publicationURL(archive types.ArchiveRef, query ports.BinaryQuery) (string, error) {
	var base string
	switch archive.Kind {
	case types.ArchiveKindPrimary:
		base = fmt.Sprintf("%s/%s/+archive/primary", a.BaseURL, a.Distribution)
	case types.ArchiveKindPPA:
		if strings.TrimSpace(archive.Owner) == "" || strings.TrimSpace(archive.Name) == "" {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("PPA reference requires owner and name")
		}
		base = fmt.Sprintf("%s/~%s/+archive/%s/%s", a.BaseURL, url.PathEscape(archive.Owner), a.Distribution, url.PathEscape(archive.Name))
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported archive kind")
	}
	values := url.Values{}
	values.Set("exact_match", "true")
	values.Set("order_by_date", "true")
	values.Set("pocket", string(query.Pocket))
	values.Set("status", string(query.Status))
	if query.ArchSeries.Source {
		values.Set("ws.op", "getPublishedSources")
		values.Set("source_name", query.Name)
		values.Set("distro_series", query.ArchSeries.SeriesLink)
	} else {
		values.Set("ws.op", "getPublishedBinaries")
		values.Set("binary_name", query.Name)
		values.Set("distro_arch_series", query.ArchSeries.SelfLink)
	}
	return base + "?" + values.Encode(), nil
}

func publicationFromPayload(payload publicationPayload, source bool) types.PublishedBinary {
	name := payload.BinaryPackageName
	version := payload.BinaryPackageVersion
	if source {
		name = payload.SourcePackageName
		version = payload.SourcePackageVersion
	}
	return types.PublishedBinary{
		Name:    name,
		Version: version,
		Pocket:  types.Pocket(payload.Pocket),
		Status:  types.PublicationStatus(payload.Status),
	}
}

func (a LaunchpadClientAdapter) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create archive request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if !a.Credential.Anonymous() {
		req.Header.Set("Authorization", oauthHeader(a.Credential))
	}
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("archive service unreachable").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		body, _ := io.ReadAll(resp.Body)
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("archive service rejected credential").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, string(body)))
	}
	if resp.StatusCode == http.StatusNotFound {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("archive object not found").
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("archive query failed").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode archive response").
			WithCause(err)
	}
	return nil
}

// oauthHeader builds a PLAINTEXT-signed OAuth header the way launchpadlib
// does for desktop integrations. The token secret is not stored; private
// archives reject the request and the run aborts, which matches the
// credential semantics of the resolver.
func oauthHeader(credential types.Credential) string {
	return fmt.Sprintf(
		`OAuth realm="https://api.launchpad.net/", oauth_consumer_key=%q, oauth_token=%q, oauth_signature_method="PLAINTEXT", oauth_signature="%%26"`,
		credential.User,
		credential.Token,
	)
}
