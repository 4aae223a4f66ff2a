package rooms

import (
	"crypto/rand"
	"regexp"
	"strings"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug turns a room name into a URL-safe prefix.
// Example: "Clínica Dra. Ana" -> "clnica-dra-ana"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if len(base) > 40 {
		base = strings.Trim(base[:40], "-")
	}
	if base == "" {
		base = "room"
	}
	return base
}

// No 0/O or 1/I/L, codes get read aloud.
const codeAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

const codeSuffixLen = 6

// NewInviteCode returns "<slug>-<random suffix>".
func NewInviteCode(name string) (string, error) {
	buf := make([]byte, codeSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	suffix := make([]byte, codeSuffixLen)
	for i, b := range buf {
		suffix[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return MakeSlug(name) + "-" + string(suffix), nil
}

// NormalizeCode makes user-typed codes comparable to stored ones.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
