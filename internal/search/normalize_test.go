package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"strips short vowels", "شَامْبُو", "شامبو"},
		{"strips shadda and tanween", "مُرَطِّبٌ", "مرطب"},
		{"folds hamza alef", "أحمد", "احمد"},
		{"folds madda alef", "آمن", "امن"},
		{"folds alef wasla", "ٱلبيت", "البيت"},
		{"folds alef maqsura", "مستشفى", "مستشفي"},
		{"folds taa marbuta", "مكتبة", "مكتبه"},
		{"folds hamza on waw", "مؤمن", "مءمن"},
		{"folds hamza on yaa", "بئر", "بءر"},
		{"lowercases latin", "MOroccan Oil", "moroccan oil"},
		{"keeps plain text", "زيت جوز الهند", "زيت جوز الهند"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"أَهْلاً وَسَهْلاً",
		"شامبو أطفال",
		"Crème Brûlée",
		"مِكْنَسَةٌ كهربائية",
	}

	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", s)
	}
}

func TestNormalizeEquivalentSpellings(t *testing.T) {
	assert.Equal(t, Normalize("أحمد"), Normalize("احمد"))
	assert.Equal(t, Normalize("إسلام"), Normalize("اسلام"))
	assert.Equal(t, Normalize("هدية"), Normalize("هديه"))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t ", nil},
		{"single term", "شامبو", []string{"شامبو"}},
		{"preserves order", "زيت جوز الهند", []string{"زيت", "جوز", "الهند"}},
		{"collapses runs and normalizes", "  زَيت   شَعر ", []string{"زيت", "شعر"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
