package figma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"figmcp/internal/slogutil"
	"figmcp/internal/version"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// API is the remote surface the design core depends on.
type API interface {
	ListFiles(ctx context.Context) ([]FileMeta, error)
	GetFile(ctx context.Context, key string, opts ...FileOption) (*File, error)
	GetNodes(ctx context.Context, key string, ids []string) (NodesResponse, error)
	GetImages(ctx context.Context, key string, ids []string, format ImageFormat, scale int) (map[string]string, error)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Token     string
	ProjectID string
	Timeout   time.Duration
	Logger    *slog.Logger
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the Figma REST API with a static personal access token.
type Client struct {
	baseURL    string
	token      string
	projectID  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new API client.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		projectID:  opts.ProjectID,
		httpClient: hc,
		logger:     logger,
	}
}

// StatusError is a non-2xx API response.
type StatusError struct {
	StatusCode int
	Path       string
	RequestID  string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("GET %s: %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	se, ok := asStatusError(err)
	return ok && se.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether err is a 403 from the API (bad token or no access).
func IsForbidden(err error) bool {
	se, ok := asStatusError(err)
	return ok && se.StatusCode == http.StatusForbidden
}

func asStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// FileOption tweaks GET /files/:key.
type FileOption func(url.Values)

// WithDepth limits how deep the returned document tree goes.
func WithDepth(depth int) FileOption {
	return func(q url.Values) {
		q.Set("depth", strconv.Itoa(depth))
	}
}

// ListFiles lists files of the configured project, or hits /files when no
// project is configured. The latter is expected to fail for most tokens;
// callers fall back to direct file access.
func (c *Client) ListFiles(ctx context.Context) ([]FileMeta, error) {
	path := "/files"
	if c.projectID != "" {
		path = "/projects/" + url.PathEscape(c.projectID) + "/files"
	}

	var resp listFilesResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// GetFile fetches a file and its document tree.
func (c *Client) GetFile(ctx context.Context, key string, opts ...FileOption) (*File, error) {
	q := url.Values{}
	for _, opt := range opts {
		opt(q)
	}

	var f File
	if err := c.get(ctx, "/files/"+url.PathEscape(key), q, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetNodes fetches node details for ids within a file.
func (c *Client) GetNodes(ctx context.Context, key string, ids []string) (NodesResponse, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))

	var resp NodesResponse
	if err := c.get(ctx, "/files/"+url.PathEscape(key)+"/nodes", q, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetImages renders ids and returns node id -> image URL.
func (c *Client) GetImages(ctx context.Context, key string, ids []string, format ImageFormat, scale int) (map[string]string, error) {
	if scale < MinImageScale || scale > MaxImageScale {
		return nil, fmt.Errorf("image scale %d out of range %d-%d", scale, MinImageScale, MaxImageScale)
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("format", string(format))
	q.Set("scale", strconv.Itoa(scale))

	var resp imagesResponse
	if err := c.get(ctx, "/images/"+url.PathEscape(key), q, &resp); err != nil {
		return nil, err
	}
	if resp.Err != nil && *resp.Err != "" {
		return nil, fmt.Errorf("image export: %s", *resp.Err)
	}
	return resp.Images, nil
}

// get issues one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Figma-Token", c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Figma API request failed",
			"path", path,
			"requestId", requestID,
			"error", err.Error(),
		)
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("Figma API request",
		"path", path,
		"requestId", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	body, err := decodeBody(resp)
	if err != nil {
		return err
	}
	defer body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Path:       path,
			RequestID:  requestID,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// decodeBody unwraps gzip when the server honoured Accept-Encoding.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return io.NopCloser(resp.Body), nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gzip response: %w", err)
	}
	return zr, nil
}
