package queue

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClampDocText(t *testing.T) {
	t.Run("short text passes through", func(t *testing.T) {
		if got := clampDocText("Section 73 applies."); got != "Section 73 applies." {
			t.Errorf("clampDocText() = %q, want input unchanged", got)
		}
	})

	t.Run("long text is capped", func(t *testing.T) {
		got := clampDocText(strings.Repeat("a", maxDocChars+100))
		if len(got) != maxDocChars {
			t.Errorf("clampDocText() length = %d, want %d", len(got), maxDocChars)
		}
	})

	t.Run("cap through a multi-byte rune stays valid utf-8", func(t *testing.T) {
		// "§" is two bytes; filling up to one byte short of the cap puts
		// the cut in the middle of the final rune.
		text := strings.Repeat("a", maxDocChars-1) + "§ trailing"
		got := clampDocText(text)
		if !utf8.ValidString(got) {
			t.Error("clampDocText() produced invalid utf-8")
		}
		if len(got) > maxDocChars {
			t.Errorf("clampDocText() length = %d, want at most %d", len(got), maxDocChars)
		}
	})

	t.Run("nul bytes are stripped", func(t *testing.T) {
		if got := clampDocText("evidence\x00exhibit"); got != "evidenceexhibit" {
			t.Errorf("clampDocText() = %q, want nul removed", got)
		}
	})
}
