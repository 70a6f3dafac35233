package captions

import "strings"

// Result is either Found with non-empty text or NotFound.
type Result struct {
	Text  string
	Found bool
}

// NotFound is the Result for videos without usable captions.
var NotFound = Result{}

// Found builds a Result from caption text; blank text is NotFound.
func Found(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return NotFound
	}
	return Result{Text: text, Found: true}
}
