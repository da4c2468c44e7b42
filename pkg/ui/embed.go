// Package ui provides the embedded browser UI for mediagrab.
//
// The page is a single static HTML document plus one script. It validates the
// URL client-side, posts it to /api/download and renders one download link per
// format. The server does not rely on the client-side check.
package ui

import (
	_ "embed"
)

// IndexHTML is the downloader page.
//
//go:embed index.html
var IndexHTML []byte

// AppJS is the script loaded by IndexHTML.
//
//go:embed app.js
var AppJS []byte

// ContentSecurityPolicy is sent with IndexHTML. Scripts load only from the
// same origin; thumbnails may come from any https host.
const ContentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src https: data:; connect-src 'self'; base-uri 'none'; form-action 'none'; frame-ancestors 'none'"
