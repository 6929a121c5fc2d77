package initializr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	oerrors "github.com/bootstack/cli/internal/errors"
	"github.com/bootstack/cli/internal/project"
)

// maxDiagnosticBytes caps how much of a rejected response is quoted in errors.
const maxDiagnosticBytes = 2048

// Query builds the provider parameters for spec.
func (c *Client) Query(spec project.Spec) url.Values {
	q := url.Values{}
	q.Set("type", c.Config.Type)
	q.Set("language", c.Config.Language)
	q.Set("bootVersion", spec.BootVersion)
	q.Set("baseDir", spec.ArtifactID)
	q.Set("groupId", spec.GroupID)
	q.Set("artifactId", spec.ArtifactID)
	q.Set("name", spec.ArtifactID)
	q.Set("packageName", spec.PackageName())
	q.Set("applicationName", spec.ApplicationClass())
	q.Set("packaging", spec.Packaging)
	q.Set("javaVersion", spec.JavaVersion)
	q.Set("dependencies", spec.DependencyList())
	return q
}

// Fetch downloads the archive for spec into a temporary file and returns
// its path. The caller removes the file. A transport failure or a non-2xx
// response is fatal; a rejected response's body is quoted in the error and
// the temporary file is removed.
func (c *Client) Fetch(ctx context.Context, spec project.Spec) (string, error) {
	if c.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Config.Timeout)
		defer cancel()
	}

	u := c.Config.URL + "?" + c.Query(spec).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", downloadError(c.Config.URL, "building request", err, nil)
	}
	c.setHeaders(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", downloadError(c.Config.URL, "request failed", err, oerrors.ErrConnectivity)
	}
	defer resp.Body.Close()

	f, err := os.CreateTemp("", "bootstack-*.zip")
	if err != nil {
		return "", downloadError(c.Config.URL, "creating temporary archive", err, nil)
	}
	path := f.Name()

	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readHead(path)
		_ = os.Remove(path)
		return "", &oerrors.DetailError{
			Type:     "download failed",
			Message:  fmt.Sprintf("provider rejected the request with %s: %s", resp.Status, body),
			Step:     "fetch",
			Location: c.Config.URL,
			Context: map[string]string{
				"revision":     spec.BootVersion,
				"dependencies": spec.DependencyList(),
			},
			Hint:  "Check the template revision and dependency identifiers.",
			Cause: oerrors.ErrDownload,
		}
	}
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", downloadError(c.Config.URL, "writing archive", err, oerrors.ErrConnectivity)
	}

	return path, nil
}

func readHead(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "<unreadable>"
	}
	defer f.Close()
	b, _ := io.ReadAll(io.LimitReader(f, maxDiagnosticBytes))
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "<empty body>"
	}
	return s
}

func downloadError(location, msg string, err, extra error) error {
	cause := errors.Join(oerrors.ErrDownload, err)
	if extra != nil {
		cause = errors.Join(oerrors.ErrDownload, extra, err)
	}
	return &oerrors.DetailError{
		Type:     "download failed",
		Message:  fmt.Sprintf("%s: %v", msg, err),
		Step:     "fetch",
		Location: location,
		Cause:    cause,
	}
}
