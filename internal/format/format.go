// Package format holds the small presentation helpers shared by handlers and
// the CLI.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSeparatorRe = regexp.MustCompile(`[^a-z0-9]+`)

// Price formats a dollar amount: Price(29.99) == "$29.99".
func Price(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Discount formats a discount percentage, rounded: Discount(33.7) == "-34%".
func Discount(percent float64) string {
	return fmt.Sprintf("-%d%%", int(math.Round(percent)))
}

// Slugify turns a title into a URL slug:
// Slugify("Baldur's Gate 3") == "baldur-s-gate-3".
func Slugify(title string) string {
	// NFD normalization + strip combining marks handles accented titles.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	s := strings.ToLower(folded)
	s = slugSeparatorRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
