package zendesk

import (
	"path"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename reduces an untrusted client filename to a conservative safe
// name: path components are stripped, runs of characters outside
// [A-Za-z0-9_.-] collapse to a single underscore, and a ".jpeg" suffix is
// normalized to ".jpg". The result is what gets URL-encoded into the upload
// endpoint's filename query parameter.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")

	if ext := path.Ext(name); strings.EqualFold(ext, ".jpeg") {
		name = strings.TrimSuffix(name, ext) + ".jpg"
	}
	if name == "" {
		name = "file"
	}
	return name
}
