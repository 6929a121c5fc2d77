// Package initializr talks to the remote template provider: it checks that
// a template revision is offered and downloads the parameterised archive.
package initializr

import (
	"net/http"
	"strings"
	"time"
)

// Config holds provider connection settings.
type Config struct {
	// URL is the archive endpoint (e.g. https://start.spring.io/starter.zip).
	URL string

	// MetadataURL is the revision metadata endpoint. Empty disables validation.
	MetadataURL string

	// Type is the template kind (e.g. maven-project).
	Type string

	// Language is the source-language marker (e.g. java).
	Language string

	// Timeout bounds the archive download. Zero means no bound beyond ctx.
	Timeout time.Duration

	// MetadataTimeout bounds the metadata query. Zero means no bound beyond ctx.
	MetadataTimeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// Client is a provider client. It makes exactly one attempt per call.
type Client struct {
	HTTPClient *http.Client
	Config     Config
}

// NewClient returns a client with the given config using http.DefaultClient.
func NewClient(cfg Config) *Client {
	cfg.URL = strings.TrimSuffix(cfg.URL, "/")
	cfg.MetadataURL = strings.TrimSuffix(cfg.MetadataURL, "/")
	return &Client{Config: cfg, HTTPClient: http.DefaultClient}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) setHeaders(req *http.Request) {
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}
}
