package export

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
)

var dashes = regexp.MustCompile("-+")

// generateFilename names the archive member of an entry: <uuid>-<name>.json.
// The uuid keeps names that differ only in case apart.
func generateFilename(e catalog.Entry) string {
	return e.UUID + "-" + sanitizeName(e.Name) + ".json"
}

// sanitizeName keeps letters, digits, dash and underscore, turns spaces into
// dashes and truncates to 40 bytes
func sanitizeName(name string) string {
	result := strings.ToLower(name)
	result = strings.ReplaceAll(result, " ", "-")

	var builder strings.Builder
	for _, r := range result {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			builder.WriteRune(r)
		}
	}

	result = dashes.ReplaceAllString(builder.String(), "-")
	result = strings.Trim(result, "-")

	if len(result) > 40 {
		result = result[:40]
	}
	if result == "" {
		result = "unnamed"
	}
	return result
}
