// Package views embeds the HTML templates.
package views

import "embed"

//go:embed layouts errors config dashboard
var FS embed.FS
