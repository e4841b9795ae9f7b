package lawref

import "testing"

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"title with separator", "LEI Nº 3.519, DE 5 DE AGOSTO DE 2019", "3.519"},
		{"plain four digits", "LEI Nº 3519 DE 5 DE AGOSTO DE 2019", "3.519"},
		{"numero spelled out", "lei número 12345", "12.345"},
		{"numero without accent", "lei numero 12345", "12.345"},
		{"sphere qualifier", "o que diz a lei estadual 1307 sobre queimadas", "1.307"},
		{"lowercase n dot", "lei n. 3519", "3.519"},
		{"no citation", "texto sem lei nenhuma", ""},
		{"no number after lei", "essa lei entrou em vigor no ano passado", ""},
		{"question form", "o que diz a lei 3.519?", "3.519"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Extract(tc.in); got != tc.want {
				t.Errorf("Extract(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// The citation pattern is a documented heuristic: a bare number right
// after "lei" is taken as a citation even when it is actually a year.
// This pins the known false positive so a future fix is a deliberate
// behavior change, not an accident.
func TestExtractKnownFalsePositiveOnYear(t *testing.T) {
	if got := Extract("a lei 2019 trouxe mudanças"); got != "2.019" {
		t.Errorf("expected documented false positive 2.019, got %q", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct{ in, want string }{
		{"3519", "3.519"},
		{"12345", "12.345"},
		{"3.519", "3.519"},
		{"12.345", "12.345"},
		{"519", "519"},
	}
	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Errorf("Format(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("12.345"); got != "12345" {
		t.Errorf("Digits(12.345) = %q", got)
	}
	if got := Digits("3519"); got != "3519" {
		t.Errorf("Digits(3519) = %q", got)
	}
}

func TestFromTitle(t *testing.T) {
	if got := FromTitle("LEI Nº 1.307, DE 2002"); got != "1.307" {
		t.Errorf("FromTitle = %q, want 1.307", got)
	}
	if got := FromTitle("RESOLUÇÃO COEMA Nº 02, DE 2021"); got != "" {
		t.Errorf("FromTitle on resolution = %q, want empty", got)
	}
}

func TestABNTCode(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ABNT NBR ISO 14040:2025", "ABNT NBR ISO 14040:2025"},
		{"nbr 10004", "NBR 10004"},
		{"Norma ABNT NBR 15113 sobre resíduos", "ABNT NBR 15113"},
		{"LEI Nº 3.519, DE 2019", ""},
	}
	for _, tc := range cases {
		if got := ABNTCode(tc.in); got != tc.want {
			t.Errorf("ABNTCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
