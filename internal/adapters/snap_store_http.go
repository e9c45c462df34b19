package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"manifest-archive-diff/internal/shared"
)

// SnapStoreAdapter queries the snap store refresh endpoint for the
// revision a channel currently publishes.
type SnapStoreAdapter struct {
	BaseURL string
	Timeout time.Duration
}

const defaultSnapStoreBaseURL = "https://api.snapcraft.io"
const snapRefreshPath = "/v2/snaps/refresh"
const snapDeviceSeries = "16"
const defaultSnapStoreTimeout = 60 * time.Second

func NewSnapStoreAdapter(baseURL string, timeoutSec int) SnapStoreAdapter {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultSnapStoreBaseURL
	}
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultSnapStoreTimeout
	}
	return SnapStoreAdapter{BaseURL: base, Timeout: timeout}
}

type snapRefreshRequest struct {
	Context []struct{}          `json:"context"`
	Actions []snapRefreshAction `json:"actions"`
}

type snapRefreshAction struct {
	Action      string `json:"action"`
	InstanceKey string `json:"instance-key"`
	Name        string `json:"name"`
	Channel     string `json:"channel"`
}

type snapRefreshResponse struct {
	Results []struct {
		Snap struct {
			Revision int `json:"revision"`
		} `json:"snap"`
	} `json:"results"`
}

// LatestRevision issues a single "download" action scoped to device
// series 16 and the given architecture and returns the revision of the
// one snap the channel publishes.
func (a SnapStoreAdapter) LatestRevision(ctx context.Context, name string, channel string, architecture string) (int, error) {
	request := snapRefreshRequest{
		Context: []struct{}{},
		Actions: []snapRefreshAction{
			{
				Action:      "download",
				InstanceKey: "0",
				Name:        name,
				Channel:     channel,
			},
		},
	}
	body, err := json.Marshal(request)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode snap refresh request").
			WithCause(err)
	}
	endpoint := a.BaseURL + snapRefreshPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create snap refresh request").
			WithCause(err)
	}
	req.Header.Set("Snap-Device-Series", snapDeviceSeries)
	req.Header.Set("Snap-Device-Architecture", architecture)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("snap store unreachable").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("snap refresh request failed").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, string(payload)))
	}
	decoded := snapRefreshResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode snap refresh response").
			WithCause(err)
	}
	if len(decoded.Results) == 0 {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no snap store result for %s in channel %s", name, channel))
	}
	revision := decoded.Results[0].Snap.Revision
	log.Debug().
		Str("snap", name).
		Str("channel", channel).
		Int("revision", revision).
		Msg("snap store query completed")
	return revision, nil
}
