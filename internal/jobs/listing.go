package jobs

import "time"

// Degree is the minimum college degree inferred from a job description.
type Degree string

const (
	DEGREE_ASSOCIATES    Degree = "Associates"
	DEGREE_BACHELORS     Degree = "Bachelor's"
	DEGREE_NOT_SPECIFIED Degree = "Not Specified"
)

// Summary is what a single card on a search results page carries.
// A nil field means the value could not be extracted.
type Summary struct {
	Company   *string `json:"company"`
	JobId     *string `json:"job_id"`
	Title     *string `json:"job_title"`
	Summary   *string `json:"job_summary"`
	Salary    *string `json:"job_salary"`
	EasyApply bool    `json:"easy_apply"`
}

// Detail is what a listing's detail page carries.
type Detail struct {
	Description      *string    `json:"job_description"`
	ApplyUrl         *string    `json:"job_apply_url"`
	PostingTimeframe *string    `json:"job_posting_timeframe"`
	PostingDatetime  *time.Time `json:"job_posting_datetime"`
	City             *string    `json:"city"`
	State            *string    `json:"state"`
	ZipCode          *string    `json:"zip_code"`
	CollegeDegree    Degree     `json:"college_degree"`
}

// EmptyDetail is the detail of a listing whose page could not be fetched.
func EmptyDetail() Detail {
	return Detail{CollegeDegree: DEGREE_NOT_SPECIFIED}
}

// Listing is the flattened record of a summary, its detail and the
// annotations added while collecting and aggregating.
type Listing struct {
	Summary
	Detail

	DetailsUrl *string `json:"job_details_url"`
	JobType    string  `json:"job_type"`

	JobBoard    string  `json:"job_board,omitempty"`
	JobSearch   string  `json:"job_search,omitempty"`
	SearchMatch float64 `json:"search_match,omitempty"`
}

// Deref returns the value of s or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
