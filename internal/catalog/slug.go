package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"unicode"
)

// Slugify normalizes a title into a URL-safe identifier: lowercase,
// every run of non-alphanumeric characters collapsed into a single
// hyphen, leading and trailing hyphens stripped, percent-encoded.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return url.PathEscape(b.String())
}

// SaltedSlug disambiguates a colliding slug with a short stable hash of
// the salt (typically the entry's source URL). Distinct titles that
// normalize to the same slug must not share an identifier.
func SaltedSlug(slug, salt string) string {
	sum := sha256.Sum256([]byte(salt))
	return slug + "-" + hex.EncodeToString(sum[:])[:8]
}
