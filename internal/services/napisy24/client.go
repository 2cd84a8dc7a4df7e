package napisy24

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"napi/internal/services"
)

const (
	defaultBaseURL     = "http://napisy24.pl"
	defaultUserAgent   = "pynapi"
	defaultHTTPTimeout = 30 * time.Second

	apiPath = "/run/CheckSubAgent.php"

	// maxResponseSize bounds how much of a service response is read.
	maxResponseSize = 32 << 20
)

// foundPrefix introduces a response that carries a subtitle archive; the
// archive bytes follow the first "||" separator.
var (
	foundPrefix  = []byte("OK-2|")
	statusPrefix = []byte("OK-")
	separator    = []byte("||")
)

// Config describes the NAPISY24 client configuration.
type Config struct {
	BaseURL    string
	UserAgent  string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client wraps the NAPISY24 CheckSub agent API.
type Client struct {
	baseURL   *url.URL
	userAgent string
	apiKey    string
	http      *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		return nil, errors.New("napisy24: api key is required")
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("napisy24: parse base url: %w", err)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		apiKey:    apiKey,
		http:      httpClient,
	}, nil
}

// Request identifies the subtitle to download. NAPISY24 matches on its own
// 64-bit hash plus file size; the NAPI-PROJEKT digest is an optional extra
// signal.
type Request struct {
	FileName string
	FileHash string
	FileSize int64
	Digest   string
	// Language is the NAPISY24 language token ("pl" or "en").
	Language string
}

// Result carries the subtitle archive returned by the service. The payload is
// a ZIP file; extraction is the caller's concern.
type Result struct {
	Archive []byte
}

// Download performs a single lookup request.
func (c *Client) Download(ctx context.Context, req Request) (Result, error) {
	if c == nil {
		return Result{}, errors.New("napisy24: client is nil")
	}
	if strings.TrimSpace(req.FileHash) == "" {
		return Result{}, services.Wrap(services.ErrInvalidInput, "napisy24", "download", "empty file hash", nil)
	}

	form := url.Values{}
	form.Set("postAction", "CheckSub")
	form.Set("ua", c.userAgent)
	form.Set("ap", c.apiKey)
	form.Set("nl", req.Language)
	form.Set("fn", req.FileName)
	form.Set("fh", req.FileHash)
	form.Set("fs", strconv.FormatInt(req.FileSize, 10))
	if req.Digest != "" {
		form.Set("md5", req.Digest)
	}

	endpoint := c.baseURL.JoinPath(apiPath)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, services.Wrap(services.ErrNetwork, "napisy24", "download", "build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, services.Wrap(services.ErrNetwork, "napisy24", "download", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, services.Wrap(services.ErrNetwork, "napisy24", "download", fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{}, services.Wrap(services.ErrNetwork, "napisy24", "download", "read response", err)
	}

	switch {
	case bytes.HasPrefix(body, foundPrefix):
		pos := bytes.Index(body, separator)
		if pos < len(foundPrefix)-1 || len(body) <= pos+len(separator) {
			return Result{}, services.Wrap(services.ErrProtocol, "napisy24", "download", "response payload too short", nil)
		}
		return Result{Archive: body[pos+len(separator):]}, nil
	case bytes.HasPrefix(body, statusPrefix):
		return Result{}, services.Wrap(services.ErrNotFound, "napisy24", "download", fmt.Sprintf("hash %s", req.FileHash), nil)
	default:
		return Result{}, services.Wrap(services.ErrProtocol, "napisy24", "download", "unrecognized response", nil)
	}
}
