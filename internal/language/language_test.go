package language

import "testing"

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"pl":      "pl",
		" PL ":    "pl",
		"polish":  "pl",
		"english": "en",
		"EN":      "en",
		"xx":      "",
		"":        "",
	}
	for input, want := range cases {
		if got := Canonical(input); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestServiceTokens(t *testing.T) {
	if got := NapiprojektToken("pl"); got != "PL" {
		t.Errorf("NapiprojektToken(pl) = %q", got)
	}
	if got := NapiprojektToken("en"); got != "ENG" {
		t.Errorf("NapiprojektToken(en) = %q", got)
	}
	if got := Napisy24Token("english"); got != "en" {
		t.Errorf("Napisy24Token(english) = %q", got)
	}
	if got := Napisy24Token("xx"); got != "" {
		t.Errorf("Napisy24Token(xx) = %q", got)
	}
}

func TestSupported(t *testing.T) {
	if !Supported("pl") || !Supported("en") {
		t.Fatal("expected pl and en to be supported")
	}
	if Supported("de") {
		t.Fatal("did not expect de to be supported")
	}
}
