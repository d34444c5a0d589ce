package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWrap(t *testing.T) {
	tests := map[string]struct {
		text string
		exp  string
	}{
		"short text unchanged": {
			text: "A draughty hall.",
			exp:  "A draughty hall.",
		},
		"empty text": {
			text: "",
			exp:  "",
		},
		"long text wrapped": {
			text: strings.Repeat("word ", 30) + "end",
			exp: strings.TrimSpace(strings.Repeat("word ", 16)) + "\n" +
				strings.TrimSpace(strings.Repeat("word ", 14)) + " end",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "wrapped", Wrap(tt.text), tt.exp)
		})
	}
}

func TestWrap_NeverExceedsWidth(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	for _, line := range strings.Split(Wrap(text), "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line exceeds %d columns: %q", DefaultWidth, line)
		}
	}
}
