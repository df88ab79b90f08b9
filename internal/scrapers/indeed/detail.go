package indeed

import (
	"autorecruiter/internal/jobs"
	"autorecruiter/pkg/htmlutil"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/titanous/json5"
)

const (
	initDataStart = "window._initialData="
	initDataEnd   = ";</script>"

	// unknownAge is how long ago a listing is assumed to be posted when it
	// does not say, indeed stops counting at "30+ days".
	unknownAge = 31 * 24 * time.Hour
)

// ParseDetail extracts the fields of a listing's detail page, `now` anchors
// relative posting times. Every field is extracted independently.
func ParseDetail(html string, now time.Time) jobs.Detail {
	detail := jobs.EmptyDetail()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		detail.Description = field(doc.Selection, func(s *goquery.Selection) (string, bool) {
			return htmlutil.FirstTrimmedText(s.Find("#jobDescriptionText"))
		})
		detail.ApplyUrl = field(doc.Selection, func(s *goquery.Selection) (string, bool) {
			return s.Find("#originalJobLinkContainer a").First().Attr("href")
		})
		detail.PostingTimeframe = field(doc.Selection, postingTimeframe)
	}
	detail.PostingDatetime = PostingDatetime(now, detail.PostingTimeframe)

	initData := ParseInitData(html)
	location, _ := initData["jobLocation"].(string)
	detail.City, detail.State, detail.ZipCode = ParseLocation(location)

	detail.CollegeDegree = InferDegree(detail.Description)
	return detail
}

func postingTimeframe(s *goquery.Selection) (string, bool) {
	footer, ok := htmlutil.FirstText(s.Find("div.jobsearch-JobMetadataFooter"))
	if !ok {
		return "", false
	}
	for _, fragment := range strings.Split(footer, "-") {
		if strings.Contains(fragment, "ago") {
			return strings.TrimSpace(fragment), true
		}
	}
	return "", false
}

// PostingDatetime turns phrases like "5 hours ago", "3 days ago" or "30+ days ago"
// into a time relative to now. A missing timeframe is treated as older than
// indeed reports. Phrasings without a count ("Today", "Just posted") yield nil.
func PostingDatetime(now time.Time, timeframe *string) *time.Time {
	fallback := now.Add(-unknownAge)
	if timeframe == nil || strings.TrimSpace(*timeframe) == "" {
		return &fallback
	}
	tf := *timeframe

	var unit time.Duration
	switch {
	case strings.Contains(tf, "hour"):
		unit = time.Hour
	case strings.Contains(tf, "day"):
		if strings.Contains(tf, "30+") {
			return &fallback
		}
		unit = 24 * time.Hour
	default:
		return nil
	}

	n, ok := leadingInt(tf)
	if !ok {
		return nil
	}
	posted := now.Add(-time.Duration(n) * unit)
	return &posted
}

func leadingInt(s string) (int, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseInitData parses the json object assigned to window._initialData in the
// page's scripts, an empty map is returned when it is missing or malformed.
func ParseInitData(html string) map[string]any {
	out := map[string]any{}

	start := strings.Index(html, initDataStart)
	if start < 0 {
		return out
	}
	rest := html[start+len(initDataStart):]
	end := strings.Index(rest, initDataEnd)
	if end < 0 {
		return out
	}

	var parsed map[string]any
	err := json5.Unmarshal([]byte(rest[:end]), &parsed)
	if err != nil || parsed == nil {
		return out
	}
	return parsed
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ParseLocation splits "Trenton, NJ 08608" into city, state and zip code.
// A trailing all-digit token is the zip code, the rest is split on its last comma.
func ParseLocation(location string) (city, state, zipCode *string) {
	tokens := strings.Fields(location)
	if len(tokens) == 0 {
		return nil, nil, nil
	}

	if last := tokens[len(tokens)-1]; isDigits(last) {
		zipCode = &last
		tokens = tokens[:len(tokens)-1]
	}
	remainder := strings.Join(tokens, " ")

	idx := strings.LastIndex(remainder, ",")
	if idx < 0 {
		if remainder != "" {
			city = &remainder
		}
		return city, nil, zipCode
	}

	c := strings.TrimSpace(remainder[:idx])
	s := strings.TrimSpace(remainder[idx+1:])
	if c != "" {
		city = &c
	}
	if s != "" {
		state = &s
	}
	return city, state, zipCode
}

// InferDegree finds the minimum college degree mentioned in a description,
// associates is checked before bachelor.
func InferDegree(description *string) jobs.Degree {
	if description == nil {
		return jobs.DEGREE_NOT_SPECIFIED
	}
	lower := strings.ToLower(*description)
	switch {
	case strings.Contains(lower, "associates"):
		return jobs.DEGREE_ASSOCIATES
	case strings.Contains(lower, "bachelor"):
		return jobs.DEGREE_BACHELORS
	default:
		return jobs.DEGREE_NOT_SPECIFIED
	}
}
