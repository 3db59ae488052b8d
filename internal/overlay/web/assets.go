package web

import "embed"

// Assets embeds the overlay page template into the binary.
//
//go:embed templates
var Assets embed.FS
