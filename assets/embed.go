// Package assets embeds the demo bitmaps. The game reads them through a
// drive layer.
package assets

import "embed"

//go:embed *.png
var FS embed.FS
