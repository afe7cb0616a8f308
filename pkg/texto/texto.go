// Package texto normaliza texto para búsquedas tolerantes a acentos.
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizar pasa a minúsculas y quita acentos ("Ramón" -> "ramon").
// Se aplica tanto al texto de búsqueda como a las columnas normalizadas
// que se escriben junto a los datos originales.
func Normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
