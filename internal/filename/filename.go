// Package filename turns user supplied file names into safe display names and
// collision resistant storage names.
package filename

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback replaces names that sanitize to nothing.
const Fallback = "document"

// asciiFold decomposes characters and drops the combining marks and anything
// left outside ASCII, so "Résumé" becomes "Resume". Chains hold buffers, so a
// new one is built per call.
func asciiFold() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
}

// Sanitize reduces raw to the characters [A-Za-z0-9._-]. Path separators and
// whitespace become underscores, leading and trailing dots or underscores are
// trimmed. It never returns an empty string.
func Sanitize(raw string) string {
	s, _, err := transform.String(asciiFold(), raw)
	if err != nil {
		s = raw
	}
	s = strings.NewReplacer("/", " ", `\`, " ").Replace(s)
	s = strings.Join(strings.Fields(s), "_")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isSafe(r) {
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return Fallback
	}
	return out
}

// DisplayName builds the human readable name for an upload with the given
// (already validated) extension. When nothing of the stem survives sanitizing
// the result is "document.<ext>".
func DisplayName(raw, ext string) string {
	ext = strings.ToLower(ext)
	if ext == "" {
		return Sanitize(raw)
	}
	stem := raw
	if i := strings.LastIndex(raw, "."); i >= 0 && strings.ToLower(raw[i+1:]) == ext {
		stem = raw[:i]
	}
	return Sanitize(stem) + "." + ext
}

// Extension returns the lower-cased text after the last dot of raw, or "" if
// raw has no dot.
func Extension(raw string) string {
	i := strings.LastIndex(raw, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(raw[i+1:])
}

// StorageName returns "<32 hex>.<ext>" using a fresh random UUID. Names without
// an extension get the bare hex token, never a trailing dot.
// Uniqueness is probabilistic; callers do not check for an existing blob.
func StorageName(raw string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	ext := safeExtension(Extension(raw))
	if ext == "" {
		return token
	}
	return token + "." + ext
}

func safeExtension(ext string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
}

func isSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_'
}
