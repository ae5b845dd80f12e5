// Package sanitize strips markup from user-supplied text before it is
// persisted or echoed back to a browser.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Title removes all HTML tags and surrounding whitespace from a todo title.
func Title(raw string) string {
	return strings.TrimSpace(strict.Sanitize(raw))
}
