package geocode

import "strings"

// turkishFolder rewrites the Turkish letters that survive upper-casing into
// their closest ASCII forms, matching the centroid table's keys.
var turkishFolder = strings.NewReplacer(
	"İ", "I",
	"ı", "I",
	"Ş", "S",
	"Ğ", "G",
	"Ü", "U",
	"Ö", "O",
	"Ç", "C",
)

// FoldCity normalizes a city name for centroid lookup: trim, upper-case,
// fold diacritics.
func FoldCity(city string) string {
	return turkishFolder.Replace(strings.ToUpper(strings.TrimSpace(city)))
}
