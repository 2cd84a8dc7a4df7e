package napiprojekt

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"napi/internal/services"
)

const (
	defaultBaseURL     = "http://napiprojekt.pl"
	defaultClient      = "pynapi"
	defaultClientVer   = "0"
	defaultHTTPTimeout = 30 * time.Second

	apiPath = "/api/api-napiprojekt3.php"

	// maxResponseSize bounds how much of a service response is read.
	maxResponseSize = 32 << 20
)

// Config describes the NAPI-PROJEKT client configuration.
type Config struct {
	BaseURL       string
	Client        string
	ClientVersion string
	HTTPClient    *http.Client
	Timeout       time.Duration
}

// Client wraps the NAPI-PROJEKT download API.
type Client struct {
	baseURL   *url.URL
	client    string
	clientVer string
	http      *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("napiprojekt: parse base url: %w", err)
	}
	clientName := strings.TrimSpace(cfg.Client)
	if clientName == "" {
		clientName = defaultClient
	}
	clientVer := strings.TrimSpace(cfg.ClientVersion)
	if clientVer == "" {
		clientVer = defaultClientVer
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
		client:    clientName,
		clientVer: clientVer,
		http:      httpClient,
	}, nil
}

// Request identifies the subtitle to download.
type Request struct {
	// Digest is the MD5-prefix lookup key.
	Digest string
	// Language is the NAPI-PROJEKT language token ("PL" or "ENG").
	Language string
}

// Result carries the decoded subtitle payload.
type Result struct {
	Data []byte
}

// apiResponse mirrors the XML envelope of api-napiprojekt3.php.
type apiResponse struct {
	XMLName xml.Name
	Status  string `xml:"status"`
	Content string `xml:"subtitles>content"`
}

// Download performs a single lookup request. A service answer without a match
// is services.ErrNotFound; transport and decode failures carry the network and
// protocol markers respectively.
func (c *Client) Download(ctx context.Context, req Request) (Result, error) {
	if c == nil {
		return Result{}, errors.New("napiprojekt: client is nil")
	}
	if strings.TrimSpace(req.Digest) == "" {
		return Result{}, services.Wrap(services.ErrInvalidInput, "napiprojekt", "download", "empty digest", nil)
	}

	form := url.Values{}
	form.Set("downloaded_subtitles_id", req.Digest)
	form.Set("mode", "1")
	form.Set("client", c.client)
	form.Set("client_ver", c.clientVer)
	form.Set("downloaded_subtitles_lang", req.Language)
	form.Set("downloaded_subtitles_txt", "1")

	endpoint := c.baseURL.JoinPath(apiPath)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, services.Wrap(services.ErrNetwork, "napiprojekt", "download", "build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, services.Wrap(services.ErrNetwork, "napiprojekt", "download", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, services.Wrap(services.ErrNetwork, "napiprojekt", "download", fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{}, services.Wrap(services.ErrNetwork, "napiprojekt", "download", "read response", err)
	}

	var envelope apiResponse
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return Result{}, services.Wrap(services.ErrProtocol, "napiprojekt", "download", "parse response", err)
	}
	if envelope.Status != "success" {
		return Result{}, services.Wrap(services.ErrNotFound, "napiprojekt", "download", fmt.Sprintf("digest %s", req.Digest), nil)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(envelope.Content))
	if err != nil {
		return Result{}, services.Wrap(services.ErrProtocol, "napiprojekt", "download", "decode payload", err)
	}
	if len(data) == 0 {
		return Result{}, services.Wrap(services.ErrProtocol, "napiprojekt", "download", "empty payload", nil)
	}
	return Result{Data: data}, nil
}
