// Package extract normalizes raw model output into values the rest of the
// service can consume. Gemini wraps answers in markdown fences more often
// than not, so every caller goes through here instead of parsing directly.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// Kind discriminates the shape of a Result. A Result is exactly one of the
// three kinds, never a mix.
type Kind string

const (
	KindJSON     Kind = "json"
	KindSections Kind = "sections"
	KindFailed   Kind = "failed"
)

type Result struct {
	Kind     Kind
	JSON     map[string]any
	Sections Sections
	Failure  *ParseError
}

// Sections holds the three ordered spans of a numbered narrative answer.
// A missing marker leaves its span empty, it is not an error.
type Sections struct {
	Process         string `json:"process,omitempty"`
	Estimate        string `json:"estimate,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`
}

// ParseError reports a model answer that could not be parsed as JSON.
// Cleaned carries the post-cleanup text for diagnostics.
type ParseError struct {
	Cleaned string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("extract: parse model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// fence markers with an optional language tag glued to them
var fenceRe = regexp.MustCompile("```[ \t]*(?i:json)?")

// CleanFences strips markdown fence markers and their language tags, then
// trims surrounding whitespace. Content between the fences is untouched.
func CleanFences(raw string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
}

// JSONObject cleans the raw text and parses it as a single JSON object.
// No speculative repair is attempted: a malformed payload surfaces as a
// *ParseError rather than a guessed object.
func JSONObject(raw string) (map[string]any, error) {
	cleaned := CleanFences(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, &ParseError{Cleaned: cleaned, Err: err}
	}
	return obj, nil
}

// SplitSections extracts the "1. ... 2. ... 3. ..." spans of a narrative
// answer. Markers are searched in order; each span runs up to the next
// marker or end of text. Best effort only: a marker digit reused inside a
// span can shift the boundaries, which is acceptable for display text.
func SplitSections(raw string) Sections {
	text := CleanFences(raw)

	spans := make([]string, 3)
	offset := 0
	for i := 0; i < 3; i++ {
		marker := regexp.MustCompile(fmt.Sprintf(`(^|\s)%d\.\s*`, i+1))
		loc := marker.FindStringIndex(text[offset:])
		if loc == nil {
			continue
		}
		start := offset + loc[1]
		end := len(text)
		if i < 2 {
			next := regexp.MustCompile(fmt.Sprintf(`(^|\s)%d\.\s*`, i+2))
			if nextLoc := next.FindStringIndex(text[start:]); nextLoc != nil {
				end = start + nextLoc[0]
			}
		}
		spans[i] = strings.TrimSpace(text[start:end])
		offset = start
	}

	return Sections{
		Process:         spans[0],
		Estimate:        spans[1],
		Recommendations: spans[2],
	}
}

// AsJSON wraps a raw answer in a Result, failing typed on parse errors.
func AsJSON(raw string) Result {
	obj, err := JSONObject(raw)
	if err != nil {
		var perr *ParseError
		errors.As(err, &perr)
		return Result{Kind: KindFailed, Failure: perr}
	}
	return Result{Kind: KindJSON, JSON: obj}
}

// AsSections wraps a raw answer in a Result. Never fails.
func AsSections(raw string) Result {
	return Result{Kind: KindSections, Sections: SplitSections(raw)}
}
