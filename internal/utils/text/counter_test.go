package text_test

import (
	"strings"
	"testing"

	"briefly/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "ASCII text", input: "hello", expected: 5},
		{name: "ASCII with spaces", input: "hello world", expected: 11},
		{name: "accented", input: "déjà vu", expected: 7},
		{name: "German umlauts", input: "Grüße", expected: 5},
		{name: "Chinese", input: "你好世界", expected: 4},
		{name: "mixed", input: "hello世界", expected: 7},
		{name: "emoji", input: "Hello👋", expected: 6},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCountTrimmedRunes(t *testing.T) {
	if got := text.CountTrimmedRunes("   abc \n\t"); got != 3 {
		t.Errorf("CountTrimmedRunes = %d, want 3", got)
	}
	if got := text.CountTrimmedRunes(strings.Repeat(" ", 60)); got != 0 {
		t.Errorf("CountTrimmedRunes(blank) = %d, want 0", got)
	}
}
