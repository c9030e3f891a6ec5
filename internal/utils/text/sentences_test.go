package text_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"briefly/internal/utils/text"
)

/* ───────── SplitSentences ───────── */

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "three sentences",
			input: "The cat sat. The cat sat on the mat. Dogs bark loudly.",
			want:  []string{"The cat sat.", "The cat sat on the mat.", "Dogs bark loudly."},
		},
		{
			name:  "mixed terminal marks",
			input: "Is it raining? Yes it is! Bring an umbrella.",
			want:  []string{"Is it raining?", "Yes it is!", "Bring an umbrella."},
		},
		{
			name:  "no whitespace after mark",
			input: "First sentence here.Second sentence here.",
			want:  []string{"First sentence here.", "Second sentence here."},
		},
		{
			name:  "lowercase after period does not split",
			input: "Prices rose by 3.5 percent. e.g. this stays together.",
			want:  []string{"Prices rose by 3.5 percent. e.g. this stays together."},
		},
		{
			name:  "no terminal punctuation is one sentence",
			input: "just a long run of words without any ending mark",
			want:  []string{"just a long run of words without any ending mark"},
		},
		{
			name:  "short fragments dropped",
			input: "Hi. Ok. This one is long enough.",
			want:  []string{"This one is long enough."},
		},
		{
			name:  "inner whitespace collapsed",
			input: "Line one\n  continues   here. Line   two\tends.",
			want:  []string{"Line one continues here.", "Line two ends."},
		},
		{
			name:  "non-ASCII uppercase starts a sentence",
			input: "Das ist gut. Über alles geht es weiter.",
			want:  []string{"Das ist gut.", "Über alles geht es weiter."},
		},
		{
			name:  "only noise yields nothing",
			input: "  A.  B. ",
			want:  []string{},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.SplitSentences(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitSentences(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSplitSentences_FiveRuneFragmentDropped(t *testing.T) {
	// "Hello" has five runes, "Hello!" has six.
	got := text.SplitSentences("Hello Hello! World peace now.")
	want := []string{"Hello Hello!", "World peace now."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if got := text.SplitSentences("Hello"); len(got) != 0 {
		t.Errorf("SplitSentences(%q) = %v, want empty", "Hello", got)
	}
}

func TestSplitSentences_ControlBytesAreNotBoundaries(t *testing.T) {
	in := "alpha beta gamma\x00delta epsilon zeta"

	got := text.SplitSentences(in)
	if diff := cmp.Diff([]string{in}, got); diff != "" {
		t.Errorf("SplitSentences mismatch (-want +got):\n%s", diff)
	}

	got = text.SplitSentences("First one here.\x00Second one here. Third one here.")
	want := []string{"First one here.\x00Second one here.", "Third one here."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitSentences mismatch (-want +got):\n%s", diff)
	}
}
