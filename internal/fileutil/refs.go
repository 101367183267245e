package fileutil

import "strings"

var externalPrefixes = []string{"data:", "http://", "https://", "//"}

// IsExternalRef reports references that never name a local file: template
// placeholders, data URIs and remote or protocol-relative URLs. Empty
// references count as external.
func IsExternalRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.Contains(ref, "{{") {
		return true
	}
	lower := strings.ToLower(ref)
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
