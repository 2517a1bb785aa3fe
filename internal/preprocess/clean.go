// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preprocess

import (
	"regexp"
	"strings"
)

var (
	// boilerplatePattern drops the subscription and cookie-notice phrases
	// that survive paragraph extraction on news sites.
	boilerplatePattern = regexp.MustCompile(`(?i)(Subscribe|Sign up|All rights reserved|Cookie)`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean normalizes one text field: boilerplate phrases removed, whitespace
// runs collapsed to single spaces, ends trimmed (R1.1, R1.2).
func Clean(t string) string {
	t = boilerplatePattern.ReplaceAllString(t, " ")
	t = whitespacePattern.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
