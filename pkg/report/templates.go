package report

import "embed"

// TemplatesFS embeds the default report template.
//
//go:embed templates/*.tmpl
var TemplatesFS embed.FS
