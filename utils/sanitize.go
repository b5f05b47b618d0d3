package utils

import "github.com/microcosm-cc/bluemonday"

var ugcPolicy = bluemonday.UGCPolicy()

// SanitizeHTML strips scripts, event handlers and unsafe URLs from
// admin-authored rich text while keeping basic formatting.
func SanitizeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}
