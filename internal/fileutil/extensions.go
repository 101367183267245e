package fileutil

import (
	"path/filepath"
	"strings"
)

// Extension groups understood by the extractors and the manifest probes.
var (
	ScriptExtensions     = []string{".js", ".ts"}
	MarkupExtensions     = []string{".wxml"}
	StylesheetExtensions = []string{".wxss", ".less", ".scss", ".css"}
	ManifestExtensions   = []string{".json"}
	ScriptModuleExts     = []string{".wxs"}
	ImageExtensions      = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"}
)

// DefaultFileTypes are scanned when the caller does not narrow the set.
func DefaultFileTypes() []string {
	out := make([]string, 0, 12)
	out = append(out, ScriptExtensions...)
	out = append(out, MarkupExtensions...)
	out = append(out, StylesheetExtensions...)
	out = append(out, ManifestExtensions...)
	out = append(out, ScriptModuleExts...)
	return out
}

// NormalizeExtension lower-cases ext and guarantees a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// HasExtension reports whether path ends in one of exts (case-insensitive).
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range exts {
		if ext == candidate {
			return true
		}
	}
	return false
}
