package search

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	lex := testLexicon()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and punctuation", "Biaya UKT, berapa?!", "biaya ukt berapa"},
		{"alias before punctuation strip", "Universitas Gadjah Mada.", "ugm"},
		{"whitespace collapse", "  daftar   snbp  ", "daftar snbp"},
		{"digits survive", "UKT 2026", "ukt 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(lex, tt.in); got != tt.want {
				t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	got := tokenize(testLexicon(), "S1 di UGM: a b snbp")
	want := []string{"s1", "di", "ugm", "snbp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}

func TestExtractPhrases(t *testing.T) {
	got := extractPhrases("cara daftar snbp ugm")
	want := []string{
		"cara daftar", "daftar snbp", "snbp ugm",
		"cara daftar snbp", "daftar snbp ugm",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractPhrases = %v, want %v", got, want)
	}
}

func TestExtractPhrases_ShortWordsSkipped(t *testing.T) {
	// "di" is two characters and drops out before windowing, so the
	// phrase bridges across it.
	got := extractPhrases("daftar di ugm")
	want := []string{"daftar ugm"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractPhrases = %v, want %v", got, want)
	}
}

func TestExtractPhrases_TooFewWords(t *testing.T) {
	if got := extractPhrases("snbp"); got != nil {
		t.Errorf("expected no phrases, got %v", got)
	}
}
