package initializr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// metadataMediaType selects the provider's client metadata format.
const metadataMediaType = "application/vnd.initializr.v2.2+json"

// Status is the outcome of a revision check.
type Status int

const (
	// Unknown means the revision could not be checked; generation proceeds with a warning.
	Unknown Status = iota
	// Valid means the provider offers the revision.
	Valid
	// Invalid means the provider does not offer the revision.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Validation is the result of ValidateVersion.
type Validation struct {
	Status Status

	// Offered lists the accepted revisions, newest first. Set for Valid and Invalid.
	Offered []string

	// Reason explains an Unknown status.
	Reason string
}

// Version is one revision offered by the provider.
type Version struct {
	ID      string
	Name    string
	Default bool
}

type metadataDoc struct {
	BootVersion struct {
		Default string `json:"default"`
		Values  []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"values"`
	} `json:"bootVersion"`
}

// Versions returns the revisions the provider currently offers, newest first.
func (c *Client) Versions(ctx context.Context) ([]Version, error) {
	if c.Config.MetadataURL == "" {
		return nil, fmt.Errorf("metadata provider not configured")
	}

	if c.Config.MetadataTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Config.MetadataTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Config.MetadataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", metadataMediaType)
	c.setHeaders(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("metadata %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var doc metadataDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if len(doc.BootVersion.Values) == 0 {
		return nil, fmt.Errorf("metadata lists no revisions")
	}

	versions := make([]Version, 0, len(doc.BootVersion.Values))
	for _, v := range doc.BootVersion.Values {
		versions = append(versions, Version{
			ID:      v.ID,
			Name:    v.Name,
			Default: v.ID == doc.BootVersion.Default,
		})
	}
	SortNewestFirst(versions)
	return versions, nil
}

// ValidateVersion checks rev against the provider's offered revisions.
// It never returns an error: failures to reach or read the metadata are
// reported as Unknown.
func (c *Client) ValidateVersion(ctx context.Context, rev string) Validation {
	if c.Config.MetadataURL == "" {
		return Validation{Status: Unknown, Reason: "metadata provider not configured"}
	}

	versions, err := c.Versions(ctx)
	if err != nil {
		return Validation{Status: Unknown, Reason: err.Error()}
	}

	offered := make([]string, 0, len(versions))
	found := false
	for _, v := range versions {
		offered = append(offered, v.ID)
		if v.ID == rev {
			found = true
		}
	}
	if found {
		return Validation{Status: Valid, Offered: offered}
	}
	return Validation{Status: Invalid, Offered: offered}
}

// SortNewestFirst orders versions by descending semantic version. Ids that
// do not parse sort after every parsable id, in reverse lexical order.
func SortNewestFirst(versions []Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		a, b := canonical(versions[i].ID), canonical(versions[j].ID)
		switch {
		case a != "" && b != "":
			if c := semver.Compare(a, b); c != 0 {
				return c > 0
			}
			return versions[i].ID > versions[j].ID
		case a != "":
			return true
		case b != "":
			return false
		default:
			return versions[i].ID > versions[j].ID
		}
	})
}

// canonical maps provider revision ids onto semver: "3.3.5" -> "v3.3.5",
// "3.4.0-SNAPSHOT" -> "v3.4.0-SNAPSHOT", "3.4.0.M1" -> "v3.4.0-M1",
// "2.7.18.RELEASE" -> "v2.7.18". Returns "" when id is not a version.
func canonical(id string) string {
	core, pre, _ := strings.Cut(id, "-")
	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		qualifier := strings.Join(parts[3:], ".")
		parts = parts[:3]
		if qualifier != "RELEASE" {
			if pre != "" {
				pre = qualifier + "." + pre
			} else {
				pre = qualifier
			}
		}
	}
	v := "v" + strings.Join(parts, ".")
	if pre != "" {
		v += "-" + pre
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
