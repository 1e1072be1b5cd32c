// pantry/text/fold.go
package text

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// High is the sentinel used to form the exclusive upper bound for prefix ranges.
// U+10FFFD is the highest valid scalar value that's not a noncharacter.
const High = "\U0010FFFD"

// chainPool avoids per-call allocations.
// Each borrower gets an NFD → strip combining marks (Mn) → NFC pipeline.
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)), // remove combining diacritics
			norm.NFC,
		)
	},
}

// Fold lowercases and strips *combining* diacritics via NFD→remove(Mn)→NFC.
// It does not guarantee ASCII; characters like "ø" or "ß" remain.
// Returns "" for blank/whitespace-only strings.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// ASCII fast path: already lowercase ASCII needs no transform.
	if isASCIIAndLower(s) {
		return s
	}

	s = strings.ToLower(s)

	t := chainPool.Get().(transform.Transformer)
	defer func() {
		t.Reset()
		chainPool.Put(t)
	}()

	out, _, _ := transform.String(t, s)
	return out
}

// Key folds s into an identifier key: Fold, then every run of spaces,
// hyphens, dots or underscores becomes a single underscore, trimmed at both
// ends. "Validate-Email", "validate email" and "validate_email" share a key.
func Key(s string) string {
	f := Fold(s)
	if f == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(f))
	sep := false
	for _, r := range f {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// PrefixRange returns the half-open range [lo, hi) for a raw query string q:
//
//	lo = Key(q)
//	hi = lo + High
//
// If q is empty after folding, both lo and hi are "".
func PrefixRange(q string) (lo, hi string) {
	lo = Key(q)
	if lo == "" {
		return "", ""
	}
	return lo, lo + High
}

// isASCIIAndLower reports whether s contains only ASCII bytes and no A..Z.
func isASCIIAndLower(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= 0x80 {
			return false
		}
		if b >= 'A' && b <= 'Z' {
			return false
		}
	}
	return true
}
