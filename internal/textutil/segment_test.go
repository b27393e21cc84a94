package textutil

import (
	"slices"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "basic",
			input: "Hello world. Hello world. Goodbye.",
			want:  []string{"Hello world.", "Hello world.", "Goodbye."},
		},
		{
			name:  "mixed terminators",
			input: "Stop! Why? Because.",
			want:  []string{"Stop!", "Why?", "Because."},
		},
		{
			name:  "terminator without space is not a boundary",
			input: "Version 1.5 shipped.Next line",
			want:  []string{"Version 1.5 shipped.Next line"},
		},
		{
			name:  "abbreviation splits",
			input: "Dr. Smith arrived.",
			want:  []string{"Dr.", "Smith arrived."},
		},
		{
			name:  "newlines and tabs",
			input: "One.\n\nTwo.\tThree",
			want:  []string{"One.", "Two.", "Three"},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "   leading. trailing   ",
			want:  []string{"leading.", "trailing"},
		},
		{
			name:  "lone terminators kept",
			input: "a. . b",
			want:  []string{"a.", ".", "b"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  nil,
		},
		{
			name:  "unicode whitespace",
			input: "Fin.\u00a0Début.",
			want:  []string{"Fin.", "Début."},
		},
		{
			name:  "information separators are whitespace",
			input: "ba \t.!\x1c\né\x1c!",
			want:  []string{"ba \t.!", "é\x1c!"},
		},
		{
			name:  "unit separator splits and trims",
			input: "\x1eA.\x1fB.\x1c",
			want:  []string{"A.", "B."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("SplitSentences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSentencesRestartable(t *testing.T) {
	seq := Sentences("First. Second. Third.")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Fatalf("second pass = %q, want %q", second, first)
	}
}

func TestSentencesStopsEarly(t *testing.T) {
	var got []string
	for s := range Sentences("One. Two. Three.") {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []string{"One.", "Two."}) {
		t.Fatalf("early stop collected %q", got)
	}
}
