// -----------------------------------------------------------------------
// Resource Namer - derives constrained, globally-unique resource names
// for uploaded files from their human titles
// -----------------------------------------------------------------------

package naming

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// maxResourceNameLen is the total length cap imposed on resource names.
	maxResourceNameLen = 40

	// suffixLen is the number of random hex characters appended for uniqueness.
	suffixLen = 8

	// fallbackBase replaces a slug that normalizes to nothing.
	fallbackBase = "file"
)

// ResourceName derives a resource name from a free-text title. The result
// contains only lowercase alphanumerics and hyphens, has no leading or
// trailing hyphen, and is at most 40 characters. A random hex suffix makes
// repeated calls with the same title produce distinct names; the normalized
// base is truncated in favor of the suffix when the title is long.
func ResourceName(title string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:suffixLen]
	return resourceName(title, suffix)
}

// resourceName is the deterministic core: same title and suffix, same result.
func resourceName(title, suffix string) string {
	slug := slugify(title)

	maxBase := maxResourceNameLen - len(suffix) - 1
	if len(slug) > maxBase {
		slug = strings.TrimRight(slug[:maxBase], "-")
		if slug == "" {
			slug = fallbackBase
		}
	}

	return slug + "-" + suffix
}

// slugify lowercases the title, maps every non-alphanumeric rune to a hyphen,
// and strips leading/trailing hyphens. Degenerate input yields fallbackBase.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return fallbackBase
	}
	return slug
}
