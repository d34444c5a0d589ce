package display

import (
	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth. Room descriptions are authored
// as single long lines; this keeps them readable on text-mode clients.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}
