package urbandash

import "embed"

// EmbeddedAssets holds the stylesheet and favicon served under /public/.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
