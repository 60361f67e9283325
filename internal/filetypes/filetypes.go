// Package filetypes decides which files are worth ranking.
package filetypes

import (
	"path/filepath"
	"strings"
)

var supportedExtensions = map[string]bool{
	".go":     true,
	".py":     true,
	".js":     true,
	".jsx":    true,
	".ts":     true,
	".tsx":    true,
	".java":   true,
	".c":      true,
	".cpp":    true,
	".cc":     true,
	".cxx":    true,
	".h":      true,
	".hpp":    true,
	".cs":     true,
	".rb":     true,
	".php":    true,
	".rs":     true,
	".swift":  true,
	".kt":     true,
	".scala":  true,
	".sh":     true,
	".bash":   true,
	".zsh":    true,
	".sql":    true,
	".r":      true,
	".pl":     true,
	".lua":    true,
	".dart":   true,
	".ex":     true,
	".exs":    true,
	".clj":    true,
	".ml":     true,
	".hs":     true,
	".vue":    true,
	".svelte": true,
	".html":   true,
	".css":    true,
	".scss":   true,
	".less":   true,
	".md":     true,
	".rst":    true,
	".txt":    true,
	".json":   true,
	".yaml":   true,
	".yml":    true,
	".toml":   true,
	".ini":    true,
	".cfg":    true,
	".xml":    true,
	".proto":  true,
	".tf":     true,
	".nix":    true,
}

var supportedBasenames = map[string]bool{
	"makefile":   true,
	"dockerfile": true,
	"rakefile":   true,
	"gemfile":    true,
	"justfile":   true,
	"readme":     true,
	"license":    true,
	"changelog":  true,
	".gitignore": true,
	".env":       true,
}

// IsSupported reports whether a path looks like a text file the ranking
// engine should consider. The check is a heuristic over the extension and
// a few well-known extensionless basenames.
func IsSupported(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if supportedBasenames[base] {
		return true
	}

	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return false
	}
	return supportedExtensions[ext]
}
