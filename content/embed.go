// Package content embeds the default catalog.
package content

import "embed"

// FS holds the default *.lua catalog files.
//
//go:embed *.lua
var FS embed.FS
