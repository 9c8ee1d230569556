package algorithms

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/unicode/norm"
)

// isNameSeparator разделители частей ФИО: пробельные символы, дефис, точка, подчеркивание
func isNameSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '.' || r == '_'
}

// NormalizeName приводит ФИО к нижнему регистру в форме NFC,
// любые последовательности разделителей заменяются одним пробелом
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	name = norm.NFC.String(strings.ToLower(name))
	return strings.Join(strings.FieldsFunc(name, isNameSeparator), " ")
}

// TokenizeName разбивает ФИО на части (фамилия, имя, отчество в любом порядке)
func TokenizeName(name string) []string {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// SimilarityRatio коэффициент схожести Ратклиффа-Обершелпа по символам (0-1)
func SimilarityRatio(a, b string) float64 {
	m := difflib.NewMatcher(
		strings.Split(strings.ToLower(a), ""),
		strings.Split(strings.ToLower(b), ""),
	)
	return m.Ratio()
}
