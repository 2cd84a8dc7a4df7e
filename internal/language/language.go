package language

import "strings"

type entry struct {
	code2       string   // ISO 639-1 (2-letter)
	napiprojekt string   // Token NAPI-PROJEKT expects in download requests
	napisy24    string   // Token NAPISY24 expects in download requests
	display     string   // Human-readable name
	words       []string // Full word forms (e.g. "polish")
}

// The services only publish Polish and English subtitle tracks for the
// pynapi-compatible API, so the table stays short.
var languages = []entry{
	{"pl", "PL", "pl", "Polish", []string{"polish", "polski"}},
	{"en", "ENG", "en", "English", []string{"english"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Supported reports whether the code or word maps to a known subtitle language.
func Supported(code string) bool {
	return lookup(code) != nil
}

// Codes returns the canonical 2-letter codes of all supported languages.
func Codes() []string {
	out := make([]string, 0, len(languages))
	for i := range languages {
		out = append(out, languages[i].code2)
	}
	return out
}

// Canonical converts any recognized code or word to its ISO 639-1 form.
// Returns empty string for unrecognized input.
func Canonical(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	return ""
}

// NapiprojektToken returns the language token NAPI-PROJEKT expects.
// Returns empty string for unrecognized input.
func NapiprojektToken(code string) string {
	if e := lookup(code); e != nil {
		return e.napiprojekt
	}
	return ""
}

// Napisy24Token returns the language token NAPISY24 expects.
// Returns empty string for unrecognized input.
func Napisy24Token(code string) string {
	if e := lookup(code); e != nil {
		return e.napisy24
	}
	return ""
}

// Display returns the human-readable name for a recognized language code.
func Display(code string) string {
	if e := lookup(code); e != nil {
		return e.display
	}
	return code
}
