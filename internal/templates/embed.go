// Package templates holds the embedded file templates of a generated
// project and renders them from a typed parameter record.
package templates

import "embed"

// TemplateFS holds every template under files/, keyed by Template.Source.
//
//go:embed all:files
var TemplateFS embed.FS

// sourceRoot is the directory inside TemplateFS that Source paths are relative to.
const sourceRoot = "files"
