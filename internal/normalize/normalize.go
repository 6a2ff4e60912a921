// Package normalize folds filesystem name variants into a canonical form.
//
// The same track name can reach the binder spelled differently depending
// on where the library lives: macOS volumes hand back decomposed accents
// (NFD) while most Linux filesystems preserve whatever bytes were written.
// All name handling goes through NFC first so parsing, sorting, and
// duration-cache keys agree across platforms.
package normalize

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NFC returns s in Unicode Normalization Form C.
func NFC(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Stem returns name without its directory or extension, NFC-normalized.
// "library/book/21234.mp3" becomes "21234".
func Stem(name string) string {
	base := filepath.Base(name)
	return NFC(strings.TrimSuffix(base, filepath.Ext(base)))
}
