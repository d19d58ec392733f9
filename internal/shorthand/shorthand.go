// Package shorthand parses one-line task commands of the form
// "Revisar doc @FGR |e Sellout |pU2 |f150226" into structured fields.
package shorthand

import (
	"errors"
	"regexp"
	"strings"
)

var ErrEmptyTitle = errors.New("task title is required")

// Fields holds the parsed pieces of a shorthand line. Empty string means
// the field was not present in the input.
type Fields struct {
	Title    string
	Tag      string
	Project  string
	Priority string
	Due      string
}

var (
	tagPattern      = regexp.MustCompile(`@(\S+)`)
	projectPattern  = regexp.MustCompile(`(?i)\|e\s*(\S+)`)
	priorityPattern = regexp.MustCompile(`\|p\s*([UuNn])\s*(\d)`)
	duePattern      = regexp.MustCompile(`\|f\s*(\d{6})`)
)

// matchTag extracts "@TAG". The tag is stored upper-cased.
func matchTag(text string) (string, string, bool) {
	loc := tagPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", text, false
	}
	tag := strings.ToUpper(text[loc[2]:loc[3]])
	return tag, text[:loc[0]] + text[loc[1]:], true
}

// matchProject extracts "|e PROJECT". The marker is case-insensitive, the
// value is kept verbatim.
func matchProject(text string) (string, string, bool) {
	loc := projectPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", text, false
	}
	project := text[loc[2]:loc[3]]
	return project, text[:loc[0]] + text[loc[1]:], true
}

// matchPriority extracts "|p U2" style codes, normalized to an upper-case
// letter followed by the digit.
func matchPriority(text string) (string, string, bool) {
	loc := priorityPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", text, false
	}
	code := strings.ToUpper(text[loc[2]:loc[3]]) + text[loc[4]:loc[5]]
	return code, text[:loc[0]] + text[loc[1]:], true
}

// matchDue extracts "|f DDMMYY" (exactly six digits, no separators).
func matchDue(text string) (string, string, bool) {
	loc := duePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", text, false
	}
	due := text[loc[2]:loc[3]]
	return due, text[:loc[0]] + text[loc[1]:], true
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Parse extracts at most one tag, project, priority, and due date from text.
// Each marker is recognized once; a repeated marker stays in the title.
// Whatever remains after extraction, with whitespace collapsed, is the title.
func Parse(text string) (Fields, error) {
	var fields Fields
	residual := strings.TrimSpace(text)

	if tag, rest, ok := matchTag(residual); ok {
		fields.Tag = tag
		residual = rest
	}
	if project, rest, ok := matchProject(residual); ok {
		fields.Project = project
		residual = rest
	}
	if priority, rest, ok := matchPriority(residual); ok {
		fields.Priority = priority
		residual = rest
	}
	if due, rest, ok := matchDue(residual); ok {
		fields.Due = due
		residual = rest
	}

	fields.Title = strings.TrimSpace(whitespaceRun.ReplaceAllString(residual, " "))
	if fields.Title == "" {
		return Fields{}, ErrEmptyTitle
	}
	return fields, nil
}
