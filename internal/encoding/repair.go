// Package encoding repairs mojibake in caller-supplied city names. Upstream
// transports are known to double-encode or mis-decode UTF-8 Chinese text,
// so the repair runs on every city string before it reaches resolution.
package encoding

import (
	"net/url"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// knownMojibake maps specific corrupted sequences seen in the wild to their
// intended text. Checked before the generic strategies because some of these
// byte sequences are too damaged for a round-trip repair to recover.
var knownMojibake = map[string]string{
	"åäº¬":    "北京",
	"Ã¥Ã¤ÂºÂ¬": "北京",
	"Ã¤ÂºÂ¬":   "京",
	"Ã¥ÂÂ":    "北",
}

// Repair attempts to recover the intended text from a mojibake string.
// Strategies are tried in order; the first one producing a plausible fix
// wins. A string no strategy can improve is returned unchanged, so Repair
// never fails.
func Repair(s string) string {
	if s == "" {
		return s
	}

	// PathUnescape rather than QueryUnescape: the query layer has already
	// decoded once, so a surviving '+' is a literal plus.
	if decoded, err := url.PathUnescape(s); err == nil && decoded != s && plausible(decoded) {
		return decoded
	}

	if fixed, ok := knownMojibake[s]; ok {
		return fixed
	}

	if fixed, ok := latin1RoundTrip(s); ok {
		return fixed
	}

	return s
}

// latin1RoundTrip undoes the classic mis-decode where UTF-8 bytes were read
// as Latin-1: re-encode every rune back to its single Latin-1 byte and see
// whether the byte string is valid multi-byte UTF-8.
func latin1RoundTrip(s string) (string, bool) {
	for _, r := range s {
		if r > 0xFF {
			// Already holds real multi-byte text; nothing to undo.
			return "", false
		}
	}

	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", false
	}
	if !utf8.ValidString(raw) || utf8.RuneCountInString(raw) == len(raw) {
		// Either not UTF-8, or purely ASCII/Latin-1 (no repair evidence).
		return "", false
	}
	return raw, true
}

// plausible rejects candidate fixes that introduced replacement runes.
func plausible(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == utf8.RuneError {
			return false
		}
	}
	return true
}
