package sbmb

import "strings"

// LanguageAuthority is the base IRI of the EU language authority table.
const LanguageAuthority = "http://publications.europa.eu/resource/authority/language/"

// TypeLabel binds a page language to the type label used in its URLs
// (e.g. "wet" in Dutch, "loi" in French).
type TypeLabel struct {
	Lang  Language
	Label string

	// IRI identifies the language in the EU language authority table.
	IRI string
}

// TypeLabels is the ordered set of configured languages.
type TypeLabels []TypeLabel

// DefaultLanguageIRI returns the language authority IRI for lang. Dutch
// maps to NLD, the code listed in the EU language authority table; older
// ELI exports used the retired NED code, which a TypeLabel can still set
// through IRI.
func DefaultLanguageIRI(lang Language) string {
	switch lang {
	case Dutch:
		return LanguageAuthority + "NLD"
	case French:
		return LanguageAuthority + "FRA"
	default:
		return LanguageAuthority + strings.ToUpper(string(lang))
	}
}

// Validate returns an error if the labels are empty, incomplete or contain
// a language twice.
func (t TypeLabels) Validate() error {
	if len(t) == 0 {
		return Errorf(EINVALID, "at least one language required")
	}
	seen := make(map[Language]bool, len(t))
	for _, l := range t {
		if l.Lang == "" {
			return Errorf(EINVALID, "language code required")
		}
		if l.Label == "" {
			return Errorf(EINVALID, "type label required for language %q", l.Lang)
		}
		if seen[l.Lang] {
			return Errorf(EINVALID, "language %q configured twice", l.Lang)
		}
		seen[l.Lang] = true
	}
	return nil
}

// Find returns the entry for lang.
func (t TypeLabels) Find(lang Language) (TypeLabel, bool) {
	for _, l := range t {
		if l.Lang == lang {
			return l, true
		}
	}
	return TypeLabel{}, false
}

// Label returns the type label for lang, or "" when lang is not configured.
func (t TypeLabels) Label(lang Language) string {
	l, _ := t.Find(lang)
	return l.Label
}

// LanguageIRI returns the configured authority IRI for lang.
func (t TypeLabels) LanguageIRI(lang Language) string {
	if l, ok := t.Find(lang); ok && l.IRI != "" {
		return l.IRI
	}
	return DefaultLanguageIRI(lang)
}

// Others returns every configured language except lang, in order.
func (t TypeLabels) Others(lang Language) TypeLabels {
	out := make(TypeLabels, 0, len(t))
	for _, l := range t {
		if l.Lang != lang {
			out = append(out, l)
		}
	}
	return out
}

// Sibling returns the identifier of the same act in another language by
// swapping the type label path segment. It returns false when the
// identifier does not contain the from label.
func Sibling(id, from, to string) (string, bool) {
	old := "/" + from + "/"
	if from == "" || !strings.Contains(id, old) {
		return "", false
	}
	return strings.Replace(id, old, "/"+to+"/", 1), true
}
