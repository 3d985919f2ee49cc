package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SafeFilename strips text down to ASCII letters and digits. Accented letters
// keep their base letter ("Mötley Crüe" -> "MotleyCrue"). The result may be
// empty and distinct inputs may collide.
func SafeFilename(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.TrimSpace(nonAlphanumeric.ReplaceAllString(folded, ""))
}

// SongSlug derives the storage directory name of a song.
func SongSlug(artist, song string) string {
	a, s := SafeFilename(artist), SafeFilename(song)
	switch {
	case a == "":
		return s
	case s == "":
		return a
	}
	return a + "_" + s
}
