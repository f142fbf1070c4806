package typescript

import (
	"regexp"
	"strings"
)

var lowerUpper = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// KebabCase converts an identifier to its file name form: getUserData -> get-user-data.
// Applying it twice yields the same result.
func KebabCase(name string) string {
	return strings.ToLower(lowerUpper.ReplaceAllString(name, "$1-$2"))
}
