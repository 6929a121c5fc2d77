package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// leftoverTokens must not appear in rendered output.
var leftoverTokens = []string{"{{", "<no value>"}

// MissingPlaceholderError reports a template that references a parameter
// the record does not provide, or output that still holds a placeholder.
type MissingPlaceholderError struct {
	Template string
	Token    string
	Cause    error
}

func (e *MissingPlaceholderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template %s: unresolved placeholder: %v", e.Template, e.Cause)
	}
	return fmt.Sprintf("template %s: unresolved placeholder %q in output", e.Template, e.Token)
}

func (e *MissingPlaceholderError) Unwrap() error {
	return e.Cause
}

// funcs are available to every template.
var funcs = template.FuncMap{
	// placeholder renders a ${NAME} or ${NAME:default} property reference.
	"placeholder": func(name string, fallback ...any) string {
		if len(fallback) == 0 {
			return "${" + name + "}"
		}
		return fmt.Sprintf("${%s:%v}", name, fallback[0])
	},
}

// Render renders the template registered for role with data.
func Render(role Role, data Data) ([]byte, error) {
	t, err := Get(role)
	if err != nil {
		return nil, err
	}
	return RenderTemplate(t, data)
}

// RenderTemplate renders t with data. Output is byte-identical for identical data.
func RenderTemplate(t Template, data Data) ([]byte, error) {
	content, err := fs.ReadFile(TemplateFS, sourcePath(t))
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", t.Source, err)
	}
	return RenderString(string(t.Role), string(content), data)
}

// RenderString parses and executes content as a template named name.
func RenderString(name, content string, data Data) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(funcs).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &MissingPlaceholderError{Template: name, Cause: err}
	}

	out := buf.Bytes()
	for _, tok := range leftoverTokens {
		if bytes.Contains(out, []byte(tok)) {
			return nil, &MissingPlaceholderError{Template: name, Token: tok}
		}
	}
	return out, nil
}

// Filter drops templates whose required dependency is not in deps.
func Filter(ts []Template, deps []string) []Template {
	kept, _ := partition(ts, deps)
	return kept
}

// Skipped returns the templates Filter drops for deps.
func Skipped(ts []Template, deps []string) []Template {
	_, skipped := partition(ts, deps)
	return skipped
}

func partition(ts []Template, deps []string) (kept, skipped []Template) {
	have := make(map[string]bool, len(deps))
	for _, d := range deps {
		have[strings.TrimSpace(d)] = true
	}
	for _, t := range ts {
		if t.Requires == "" || have[t.Requires] {
			kept = append(kept, t)
		} else {
			skipped = append(skipped, t)
		}
	}
	return kept, skipped
}
