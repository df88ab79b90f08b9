package indeed

import (
	"autorecruiter/internal/jobs"
	"autorecruiter/pkg/htmlutil"
	"autorecruiter/pkg/textutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const jobIdPrefix = "recJobLoc_"

// extractor pulls a single field out of a listing card, ok is false if the
// field could not be found.
type extractor func(card *goquery.Selection) (value string, ok bool)

// field runs an extractor, any failure becomes an absent value without
// affecting the other fields of the card.
func field(card *goquery.Selection, extract extractor) *string {
	value, ok := extract(card)
	if !ok {
		return nil
	}
	return &value
}

// sanitizedText extracts the sanitized text of the first node matching selector.
func sanitizedText(selector string) extractor {
	return func(card *goquery.Selection) (string, bool) {
		text, ok := htmlutil.FirstText(card.Find(selector))
		if !ok {
			return "", false
		}
		return textutil.Sanitize(text), true
	}
}

func jobId(card *goquery.Selection) (string, bool) {
	id, ok := card.Find("div.sjcl div.recJobLoc").First().Attr("id")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(id, jobIdPrefix)), true
}

var (
	companyField = sanitizedText("span.company")
	summaryField = sanitizedText("div.summary")
	titleField   = sanitizedText("div.title")
	salaryField  = sanitizedText("span.salary")
)

func parseCard(card *goquery.Selection) jobs.Summary {
	return jobs.Summary{
		Company:   field(card, companyField),
		JobId:     field(card, jobId),
		Summary:   field(card, summaryField),
		Title:     field(card, titleField),
		Salary:    field(card, salaryField),
		EasyApply: card.Find("span.iaLabel").Length() > 0,
	}
}

// ParseListings extracts a summary for every job card on a search results page.
func ParseListings(html string) []jobs.Summary {
	out := []jobs.Summary{}
	if strings.TrimSpace(html) == "" {
		return out
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return out
	}
	doc.Find("div.jobsearch-SerpJobCard").Each(func(_ int, card *goquery.Selection) {
		out = append(out, parseCard(card))
	})
	return out
}
