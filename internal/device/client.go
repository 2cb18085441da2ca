package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/markusressel/heat2go/internal/ui"
)

// TransportError is returned for every failed exchange with the device.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s %s: unexpected status %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type StatusFetcher interface {
	GetStatus(ctx context.Context) (RawStatus, error)
}

type ActionSender interface {
	SendAction(ctx context.Context, action Action) error
}

type ScheduleTransport interface {
	GetSchedule(ctx context.Context) (RawSchedule, error)
	PostSchedule(ctx context.Context, schedule Schedule) error
}

type SettingsTransport interface {
	GetSettings(ctx context.Context) (RawSettings, error)
	PostSettings(ctx context.Context, doc ConfigDocument) error
}

// Client performs the JSON exchanges with a single device.
type Client struct {
	baseUrl string
	http    *http.Client
}

func NewClient(baseUrl string, timeout time.Duration) *Client {
	return &Client{
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func (c *Client) GetStatus(ctx context.Context) (result RawStatus, err error) {
	err = c.do(ctx, "status", http.MethodGet, PathStatus, nil, &result)
	return result, err
}

// SendAction posts an action, the response body is not consumed.
func (c *Client) SendAction(ctx context.Context, action Action) error {
	return c.do(ctx, "action", http.MethodPost, PathAction, action, nil)
}

func (c *Client) GetSchedule(ctx context.Context) (result RawSchedule, err error) {
	err = c.do(ctx, "schedule", http.MethodGet, PathSchedule, nil, &result)
	return result, err
}

func (c *Client) PostSchedule(ctx context.Context, schedule Schedule) error {
	return c.do(ctx, "schedule", http.MethodPost, PathSchedule, schedule, nil)
}

func (c *Client) GetSettings(ctx context.Context) (result RawSettings, err error) {
	err = c.do(ctx, "settings", http.MethodGet, PathSettings, nil, &result)
	return result, err
}

// PostSettings stores the given settings on the device, which reboots afterwards.
func (c *Client) PostSettings(ctx context.Context, doc ConfigDocument) error {
	return c.do(ctx, "settings", http.MethodPost, PathSettings, doc, nil)
}

func (c *Client) do(ctx context.Context, op string, method string, path string, body interface{}, out interface{}) error {
	url := c.baseUrl + path
	fail := func(statusCode int, err error) error {
		return &TransportError{Op: op, Method: method, URL: url, StatusCode: statusCode, Err: err}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fail(0, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ui.Debug("%s %s", method, url)
	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(resp.StatusCode, nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fail(0, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
