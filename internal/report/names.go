package report

import (
	"autorecruiter/pkg/textutil"
	"fmt"
	"regexp"
	"strings"
)

const maxSheetName = 31

var forbiddenSheetChars = regexp.MustCompile(`[\[\]:*?/\\]+`)

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxSheetName {
		return name
	}
	return string(runes[:maxSheetName-3]) + ".."
}

// SheetName is the name of the sheet holding the listings of a single search.
func SheetName(board, title string) string {
	name := fmt.Sprintf("%s - %s", textutil.TitleCase(board), textutil.TitleCase(title))
	name = forbiddenSheetChars.ReplaceAllString(name, "")
	return truncateName(strings.TrimSpace(name))
}

var nonLetters = regexp.MustCompile(`[^a-zA-Z]+`)

// namer hands out sheet and table names that are unique within a workbook,
// excel compares sheet names case-insensitively.
type namer struct {
	sheets map[string]bool
	tables map[string]bool
}

func newNamer() *namer {
	return &namer{sheets: map[string]bool{}, tables: map[string]bool{}}
}

func (n *namer) sheet(name string) string {
	candidate := name
	for i := 2; n.sheets[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		runes := []rune(name)
		if len(runes)+len(suffix) > maxSheetName {
			runes = runes[:maxSheetName-len(suffix)]
		}
		candidate = string(runes) + suffix
	}
	n.sheets[strings.ToLower(candidate)] = true
	return candidate
}

func (n *namer) table(sheet string) string {
	base := nonLetters.ReplaceAllString(sheet, "")
	if base == "" {
		base = "Listings"
	}
	candidate := base
	for i := 2; n.tables[strings.ToLower(candidate)]; i++ {
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
	n.tables[strings.ToLower(candidate)] = true
	return candidate
}
