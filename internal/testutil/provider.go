package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
)

// FakeProvider serves a template archive and revision metadata the way the
// real provider does.
type FakeProvider struct {
	Server *httptest.Server

	// Versions are the offered revision ids; Default marks the default one.
	Versions []string
	Default  string

	// RejectStatus, when non-zero, makes the archive endpoint fail with RejectBody.
	RejectStatus int
	RejectBody   string

	// MetadataStatus, when non-zero, makes the metadata endpoint fail.
	MetadataStatus int

	mu       sync.Mutex
	requests []url.Values
}

// NewFakeProvider starts a provider offering 3.3.5 and 3.2.10. It is closed
// when the test ends.
func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()
	p := &FakeProvider{Versions: []string{"3.2.10", "3.3.5"}, Default: "3.3.5"}

	mux := http.NewServeMux()
	mux.HandleFunc("/starter.zip", p.serveArchive)
	mux.HandleFunc("/metadata/client", p.serveMetadata)
	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Server.Close)
	return p
}

// URL is the archive endpoint.
func (p *FakeProvider) URL() string { return p.Server.URL + "/starter.zip" }

// MetadataURL is the metadata endpoint.
func (p *FakeProvider) MetadataURL() string { return p.Server.URL + "/metadata/client" }

// Requests returns the query of every archive request so far.
func (p *FakeProvider) Requests() []url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]url.Values(nil), p.requests...)
}

func (p *FakeProvider) serveArchive(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p.mu.Lock()
	p.requests = append(p.requests, q)
	p.mu.Unlock()

	if p.RejectStatus != 0 {
		w.WriteHeader(p.RejectStatus)
		fmt.Fprint(w, p.RejectBody)
		return
	}

	data, err := ProviderArchive(q.Get("baseDir"), q.Get("packageName"), q.Get("applicationName"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	_, _ = w.Write(data)
}

func (p *FakeProvider) serveMetadata(w http.ResponseWriter, _ *http.Request) {
	if p.MetadataStatus != 0 {
		w.WriteHeader(p.MetadataStatus)
		return
	}

	type value struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	values := make([]value, 0, len(p.Versions))
	for _, v := range p.Versions {
		values = append(values, value{ID: v, Name: v})
	}
	doc := map[string]any{
		"bootVersion": map[string]any{
			"type":    "single-select",
			"default": p.Default,
			"values":  values,
		},
	}
	w.Header().Set("Content-Type", "application/vnd.initializr.v2.2+json")
	_ = json.NewEncoder(w).Encode(doc)
}

// ProviderArchive builds a zip shaped like a freshly generated provider
// project rooted at baseDir, including the artifacts cleanup removes.
func ProviderArchive(baseDir, packageName, appClass string) ([]byte, error) {
	pkgPath := strings.ReplaceAll(packageName, ".", "/")
	entries := map[string]string{
		"pom.xml":                               "<project><artifactId>" + baseDir + "</artifactId></project>\n",
		"mvnw":                                  "#!/bin/sh\n",
		"mvnw.cmd":                              "@REM wrapper\n",
		".mvn/wrapper/maven-wrapper.properties": "distributionUrl=https://repo.maven.apache.org\n",
		".gitattributes":                        "/mvnw text eol=lf\n",
		".gitignore":                            "HELP.md\ntarget/\n",
		"HELP.md":                               "# Getting Started\n",
		"src/main/java/" + pkgPath + "/" + appClass + ".java":      "package " + packageName + ";\n",
		"src/main/resources/application.properties":                "spring.application.name=" + baseDir + "\n",
		"src/test/java/" + pkgPath + "/" + appClass + "Tests.java": "package " + packageName + ";\n",
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create(baseDir + "/"); err != nil {
		return nil, err
	}
	for _, name := range names {
		w, err := zw.Create(baseDir + "/" + name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
