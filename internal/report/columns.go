package report

import (
	"autorecruiter/internal/jobs"
	"autorecruiter/pkg/textutil"
	"math"
)

type column struct {
	name  string
	width float64
	value func(listing jobs.Listing) any
}

func (c column) title() string {
	return textutil.TitleCase(c.name)
}

func str(s *string) any {
	return jobs.Deref(s)
}

var searchColumns = []column{
	{name: "company", width: 20, value: func(l jobs.Listing) any { return str(l.Company) }},
	{name: "job_title", width: 30, value: func(l jobs.Listing) any { return str(l.Title) }},
	{name: "job_summary", width: 50, value: func(l jobs.Listing) any { return str(l.Summary.Summary) }},
	{name: "job_salary", width: 20, value: func(l jobs.Listing) any { return str(l.Salary) }},
	{name: "city", width: 25, value: func(l jobs.Listing) any { return str(l.City) }},
	{name: "state", width: 25, value: func(l jobs.Listing) any { return str(l.State) }},
	{name: "zip_code", width: 15, value: func(l jobs.Listing) any { return str(l.ZipCode) }},
	{name: "date_posted", width: 15, value: func(l jobs.Listing) any {
		if l.PostingDatetime == nil {
			return ""
		}
		return l.PostingDatetime.Format("2006-01-02")
	}},
	{name: "job_type", width: 25, value: func(l jobs.Listing) any { return l.JobType }},
	{name: "college_degree", width: 20, value: func(l jobs.Listing) any { return string(l.CollegeDegree) }},
	{name: "job_id", width: 20, value: func(l jobs.Listing) any { return str(l.JobId) }},
	{name: "easy_apply", width: 15, value: func(l jobs.Listing) any { return l.EasyApply }},
	{name: "job_url", width: 100, value: func(l jobs.Listing) any { return str(l.DetailsUrl) }},
}

var globalColumns = append(
	[]column{
		{name: "job_board", width: 20, value: func(l jobs.Listing) any { return textutil.TitleCase(l.JobBoard) }},
		{name: "job_search", width: 20, value: func(l jobs.Listing) any { return l.JobSearch }},
		{name: "search_match", width: 15, value: func(l jobs.Listing) any {
			return math.Round(l.SearchMatch*1000) / 1000
		}},
	},
	searchColumns...,
)
