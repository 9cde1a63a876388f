package text

import (
	"regexp"
	"strings"
)

// punctuation matches the symbols that get their own token before scoring.
var punctuation = regexp.MustCompile("([.,!?;:\"'()\\[\\]{}<>+=\\-_*&^`%$#@])")

// unpadding undoes Pad for the symbols that normally hug a neighbouring
// word. Pairs are applied in order, each over the whole text.
var unpadding = [][2]string{
	{" . ", ". "},
	{" , ", ", "},
	{" ( ", " ("},
	{" ) ", ") "},
	{" @ ", "@"},
	{" ? ", "? "},
	{" ! ", "! "},
	{" ; ", "; "},
	{" : ", ": "},
	{" [ ", " ["},
	{" ] ", "] "},
	{" ' ", "'"},
}

// Pad surrounds every punctuation symbol with spaces so it is scored as a
// token of its own instead of sticking to a word.
func Pad(s string) string {
	return punctuation.ReplaceAllString(s, " $1 ")
}

// Unpad removes the spacing Pad introduced around common punctuation. Other
// symbols keep their padding.
func Unpad(s string) string {
	for _, r := range unpadding {
		s = strings.ReplaceAll(s, r[0], r[1])
	}
	return s
}
