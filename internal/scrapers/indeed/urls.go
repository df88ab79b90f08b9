package indeed

import (
	"autorecruiter/internal/jobs"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// SearchUrl builds the search results url, values are substituted as-is
// (without query escaping) because that is the form indeed's own search box produces.
func SearchUrl(criteria jobs.Criteria) string {
	keywords := strings.ReplaceAll(strings.ToLower(criteria.Keywords), " ", "+")
	return fmt.Sprintf(
		"https://www.indeed.com/jobs?q=%s+%s&l=%s&radius=%d&jt=%s&start=%d",
		keywords,
		criteria.SalaryMin,
		criteria.ZipCode,
		criteria.Radius,
		criteria.JobType,
		criteria.Offset,
	)
}

// DetailsUrl builds the url of a listing's detail page, it is nil when any of
// the parts is absent.
func DetailsUrl(company, title, jobId *string) *string {
	if company == nil || title == nil || jobId == nil {
		return nil
	}
	hyphenate := func(s string) string {
		return strings.ReplaceAll(s, " ", "-")
	}
	url := fmt.Sprintf(
		"https://www.indeed.com/cmp/%s/jobs/%s-%s",
		hyphenate(*company),
		hyphenate(*title),
		hyphenate(*jobId),
	)
	return &url
}

// cacheKey normalizes a url so that equivalent urls share a detail cache entry.
func cacheKey(url string) string {
	normalized, err := purell.NormalizeURLString(
		url,
		purell.FlagsSafe|
			purell.FlagsUsuallySafeNonGreedy|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	if err != nil {
		return url
	}
	return normalized
}
