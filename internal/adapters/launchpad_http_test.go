package adapters

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"manifest-archive-diff/internal/ports"
	"manifest-archive-diff/internal/types"
)

func launchpadFixture(t *testing.T, handler http.HandlerFunc) (*httptest.Server, LaunchpadClientAdapter) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewLaunchpadClientAdapter(server.URL, types.Credential{}, 5)
}

func TestLaunchpadClientGetSeries(t *testing.T) {
	_, client := launchpadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ubuntu/focal", r.URL.Path)
		fmt.Fprintf(w, `{"name": "focal", "self_link": %q}`, "http://example.test/ubuntu/focal")
	})

	series, err := client.GetSeries(t.Context(), "focal")
	require.NoError(t, err)
	require.Equal(t, "focal", series.Name)
	require.Equal(t, "http://example.test/ubuntu/focal", series.SelfLink)
}

func TestLaunchpadClientGetSeriesNotFound(t *testing.T) {
	_, client := launchpadFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetSeries(t.Context(), "nonexistent")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLaunchpadClientGetArchSeries(t *testing.T) {
	_, client := launchpadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ubuntu/focal/amd64", r.URL.Path)
		fmt.Fprintf(w, `{"architecture_tag": "amd64", "self_link": %q}`, "http://example.test/ubuntu/focal/amd64")
	})

	series := types.DistroSeries{Name: "focal", SelfLink: "http://example.test/ubuntu/focal"}
	archSeries, err := client.GetArchSeries(t.Context(), series, "amd64")
	require.NoError(t, err)
	require.Equal(t, "amd64", archSeries.ArchTag)
	require.Equal(t, "http://example.test/ubuntu/focal/amd64", archSeries.SelfLink)
	require.False(t, archSeries.Source)
}

func TestLaunchpadClientGetArchSeriesSource(t *testing.T) {
	// "source" never touches the service; the arch series stands for the
	// series itself.
	_, client := launchpadFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("unexpected request for source arch series")
	})

	series := types.DistroSeries{Name: "focal", SelfLink: "http://example.test/ubuntu/focal"}
	archSeries, err := client.GetArchSeries(t.Context(), series, "source")
	require.NoError(t, err)
	require.True(t, archSeries.Source)
	require.Equal(t, series.SelfLink, archSeries.SelfLink)
}

func TestLaunchpadClientGetPublishedBinaries(t *testing.T) {
	_, client := launchpadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ubuntu/+archive/primary", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "getPublishedBinaries", query.Get("ws.op"))
		require.Equal(t, "bash", query.Get("binary_name"))
		require.Equal(t, "true", query.Get("exact_match"))
		require.Equal(t, "true", query.Get("order_by_date"))
		require.Equal(t, "Updates", query.Get("pocket"))
		require.Equal(t, "Published", query.Get("status"))
		require.Equal(t, "http://example.test/ubuntu/focal/amd64", query.Get("distro_arch_series"))
		fmt.Fprint(w, `{
			"total_size": 1,
			"entries": [
				{"binary_package_name": "bash", "binary_package_version": "5.1-6ubuntu1", "pocket": "Updates", "status": "Published"}
			]
		}`)
	})

	binaries, err := client.GetPublishedBinaries(t.Context(), types.PrimaryArchive(), ports.BinaryQuery{
		Name: "bash",
		ArchSeries: types.DistroArchSeries{
			ArchTag:  "amd64",
			SelfLink: "http://example.test/ubuntu/focal/amd64",
		},
		Pocket: types.PocketUpdates,
		Status: types.StatusPublished,
	})
	require.NoError(t, err)

	want := []types.PublishedBinary{
		{Name: "bash", Version: "5.1-6ubuntu1", Pocket: types.PocketUpdates, Status: types.StatusPublished},
	}
	if diff := cmp.Diff(want, binaries); diff != "" {
		t.Fatalf("unexpected publications (-want +got):\n%s", diff)
	}
}

func TestLaunchpadClientGetPublishedBinariesPaginates(t *testing.T) {
	var server *httptest.Server
	var client LaunchpadClientAdapter
	server, client = launchpadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{
				"total_size": 2,
				"entries": [
					{"binary_package_name": "bash", "binary_package_version": "5.1-6", "pocket": "Release", "status": "Published"}
				]
			}`)
			return
		}
		fmt.Fprintf(w, `{
			"total_size": 2,
			"entries": [
				{"binary_package_name": "bash", "binary_package_version": "5.1-6ubuntu1", "pocket": "Release", "status": "Published"}
			],
			"next_collection_link": %q
		}`, server.URL+"/ubuntu/+archive/primary?page=2")
	})

	binaries, err := client.GetPublishedBinaries(t.Context(), types.PrimaryArchive(), ports.BinaryQuery{
		Name:       "bash",
		ArchSeries: types.DistroArchSeries{ArchTag: "amd64", SelfLink: "http://example.test/ubuntu/focal/amd64"},
		Pocket:     types.PocketRelease,
		Status:     types.StatusPublished,
	})
	require.NoError(t, err)
	require.Len(t, binaries, 2)
	require.Equal(t, "5.1-6ubuntu1", binaries[0].Version)
	require.Equal(t, "5.1-6", binaries[1].Version)
}

func TestLaunchpadClientGetPublishedSources(t *testing.T) {
	_, client := launchpadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		require.Equal(t, "getPublishedSources", query.Get("ws.op"))
		require.Equal(t, "bash", query.Get("source_name"))
		require.Equal(t, "http://example.test/ubuntu/focal", query.Get("distro_series"))
		fmt.Fprint(w, `{
			"total_size": 1,
			"entries": [
				{"source_package_name": "bash", "source_package_version": "5.1-6ubuntu1", "pocket": "Updates", "status": "Published"}
			]
		}`)
	})

	binaries, err := client.GetPublishedBinaries(t.Context(), types.PrimaryArchive(), ports.BinaryQuery{
		Name: "bash",
		ArchSeries: types.DistroArchSeries{
			ArchTag:    "source",
			SelfLink:   "http://example.test/ubuntu/focal",
			SeriesLink: "http://example.test/ubuntu/focal",
			Source:     true,
		},
		Pocket: types.PocketUpdates,
		Status: types.StatusPublished,
	})
	require.NoError(t, err)
	require.Len(t, binaries, 1)
	require.Equal(t, "5.1-6ubuntu1", binaries[0].Version)
}

func TestLaunchpadClientPPAURLAndRejectedCredential(t *testing.T) {
	requested := ""
	_, client := launchpadFixture(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetPublishedBinaries(t.Context(), types.PPAArchive(types.PPARef{Owner: "philroche", Name: "cloud-init"}), ports.BinaryQuery{
		Name:       "cloud-init",
		ArchSeries: types.DistroArchSeries{ArchTag: "amd64", SelfLink: "http://example.test/ubuntu/focal/amd64"},
		Pocket:     types.PocketRelease,
		Status:     types.StatusPublished,
	})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodePermissionDenied, errbuilder.CodeOf(err))
	require.Equal(t, "/~philroche/+archive/ubuntu/cloud-init", requested)
}

func TestLaunchpadClientSendsCredentialHeader(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"name": "focal"}`)
	}))
	t.Cleanup(server.Close)

	client := NewLaunchpadClientAdapter(server.URL, types.Credential{User: "philroche", Token: "token-123"}, 5)
	_, err := client.GetSeries(t.Context(), "focal")
	require.NoError(t, err)
	require.Contains(t, header, `oauth_consumer_key="philroche"`)
	require.Contains(t, header, `oauth_token="token-123"`)
}

func TestLaunchpadClientUnreachable(t *testing.T) {
	client := NewLaunchpadClientAdapter("http://127.0.0.1:1", types.Credential{}, 1)
	_, err := client.GetSeries(t.Context(), "focal")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeUnavailable, errbuilder.CodeOf(err))
}
