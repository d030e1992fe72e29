package core

import "strings"

// MaxKeyLabelLength caps the label part of a subcategory key, in characters.
const MaxKeyLabelLength = 30

var keyLabelReplacer = strings.NewReplacer(" ", "_", "/", "_")

// SubcategoryKey builds the key of the subcategory opened by a header row:
// the header's article number, an underscore, and its type label with spaces
// and slashes turned into underscores, cut to MaxKeyLabelLength characters.
//
//	SubcategoryKey("10000", "Piles bouton / Knopfzellen") == "10000_Piles_bouton___Knopfzellen"
func SubcategoryKey(code, label string) string {
	sanitized := []rune(keyLabelReplacer.Replace(strings.TrimSpace(label)))
	if len(sanitized) > MaxKeyLabelLength {
		sanitized = sanitized[:MaxKeyLabelLength]
	}
	return code + "_" + string(sanitized)
}
