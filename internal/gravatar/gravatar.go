// Package gravatar derives avatar URLs from email addresses.
//
// Gravatar serves a globally-recognised avatar for an email address: the
// URL embeds the MD5 hex digest of the trimmed, lowercased email. MD5 is
// cryptographically broken, but here it's an identifier, not a security
// primitive — the Gravatar protocol specifies it.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// URL options, fixed for this application:
//   - s=200  → 200px image
//   - r=pg   → "pg"-rated images only
//   - d=mm   → "mystery man" silhouette when the email has no gravatar
const (
	size       = "200"
	rating     = "pg"
	defaultImg = "mm"
)

// URL returns the deterministic gravatar URL for an email address.
// The same email always yields the same URL, so the value can be computed
// once at registration and stored with the user.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf(
		"https://www.gravatar.com/avatar/%s?s=%s&r=%s&d=%s",
		hex.EncodeToString(sum[:]), size, rating, defaultImg,
	)
}
