// Package httpstore saves editor state to the remote project API.
//
// Every endpoint is an idempotent whole-value PUT:
//
//	PUT {base}/projects/{id}/transcript     {"transcript": [...]}
//	PUT {base}/projects/{id}/lyric-preset   {"presetId": "..."}
//	PUT {base}/projects/{id}/layout-preset  {"presetId": "..."}
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/user/caption-timeline-cli/transcript"
)

// HTTPDoer is the HTTP client the store sends requests with.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is a non-2xx response.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.Code, e.Body)
}

// Client implements persist.Store over HTTP.
type Client struct {
	baseURL   string
	projectID string
	token     string
	client    HTTPDoer
}

// New returns a client for project on the API at baseURL. An empty token
// sends no Authorization header. A nil doer uses http.DefaultClient.
func New(baseURL, projectID, token string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		projectID: strings.TrimSpace(projectID),
		token:     strings.TrimSpace(token),
		client:    doer,
	}
}

type transcriptBody struct {
	Transcript transcript.Transcript `json:"transcript"`
}

type presetBody struct {
	PresetID string `json:"presetId"`
}

// SaveTranscript replaces the project's transcript.
func (c *Client) SaveTranscript(ctx context.Context, t transcript.Transcript) error {
	if t == nil {
		t = transcript.Transcript{}
	}
	return c.put(ctx, "transcript", transcriptBody{Transcript: t})
}

// SaveLyricPreset replaces the project's lyric preset id.
func (c *Client) SaveLyricPreset(ctx context.Context, id string) error {
	return c.put(ctx, "lyric-preset", presetBody{PresetID: id})
}

// SaveLayoutPreset replaces the project's layout preset id.
func (c *Client) SaveLayoutPreset(ctx context.Context, id string) error {
	return c.put(ctx, "layout-preset", presetBody{PresetID: id})
}

func (c *Client) endpoint(name string) string {
	return fmt.Sprintf("%s/projects/%s/%s", c.baseURL, url.PathEscape(c.projectID), name)
}

func (c *Client) put(ctx context.Context, name string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint(name), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Endpoint: name, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
