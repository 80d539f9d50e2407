package workflowy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the WorkFlowy web origin.
	DefaultBaseURL = "https://workflowy.com"

	// clientVersion is the web client version the endpoint expects.
	clientVersion = 21

	// maxErrorBody caps how much of an error response is echoed back.
	maxErrorBody = 200
)

// HTTPDoer defines the HTTP operations required by Client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches the account tree using a browser session cookie.
type Client struct {
	sessionID  string
	baseURL    string
	httpClient HTTPDoer
	logger     *zap.Logger
}

// NewClient creates a client authenticated with the given session id.
func NewClient(sessionID string) *Client {
	return &Client{
		sessionID: sessionID,
		baseURL:   DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		logger: zap.NewNop(),
	}
}

// WithBaseURL points the client at another origin. Empty keeps the current one.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// WithHTTPClient replaces the transport.
func (c *Client) WithHTTPClient(doer HTTPDoer) *Client {
	c.httpClient = doer
	return c
}

// WithLogger sets the logger used for request diagnostics.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// FetchInitData downloads the full tree via the initialization data endpoint.
func (c *Client) FetchInitData(ctx context.Context) (*InitData, error) {
	data, _, err := c.FetchPayload(ctx)
	return data, err
}

// FetchPayload downloads the initialization data and returns it decoded
// together with the response body exactly as received.
func (c *Client) FetchPayload(ctx context.Context) (*InitData, []byte, error) {
	url := fmt.Sprintf("%s/get_initialization_data?client_version=%d", c.baseURL, clientVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Cookie", "sessionid="+c.sessionID)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching initialization data", zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("requesting initialization data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("initialization data response",
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", resp.Header.Get("Content-Type")),
	)

	if err := checkResponse(resp); err != nil {
		return nil, nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading initialization data: %w", err)
	}

	data, err := Decode(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("decoding initialization data: %w", err)
	}
	return data, body, nil
}

// checkResponse maps the status code and content type to the client's
// error kinds.
func checkResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: endpoint not found (status 404)", ErrUnexpectedResponse)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   readErrorBody(resp.Body),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: content type %q (session may have expired)", ErrUnexpectedResponse, contentType)
	}
	return nil
}

// readErrorBody returns a trimmed, truncated copy of an error response body.
func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
