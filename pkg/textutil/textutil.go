package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var disallowed = regexp.MustCompile(`[^A-Za-z0-9\.\-\?\!\,\$\%\&\#\@\^\*\(\)]+`)

// Sanitize keeps letters, digits and . - ? ! , $ % & # @ ^ * ( ), collapsing every
// run of anything else (whitespace included) into a single space.
func Sanitize(text string) string {
	return strings.TrimSpace(disallowed.ReplaceAllString(text, " "))
}

// TitleCase turns "career_builder" or "data analyst" into "Career Builder" / "Data Analyst".
func TitleCase(text string) string {
	text = strings.ReplaceAll(text, "_", " ")
	return cases.Title(language.English).String(text)
}
