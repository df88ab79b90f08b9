package jobs

import (
	"fmt"
	"strings"
)

// JobType is the employment type filter, its values are the ones the boards
// accept in their query strings.
type JobType string

const (
	FULL_TIME  JobType = "fulltime"
	PART_TIME  JobType = "parttime"
	CONTRACTOR JobType = "contractor"
)

var jobTypeLabels = map[JobType]string{
	FULL_TIME:  "Full Time",
	PART_TIME:  "Part Time",
	CONTRACTOR: "Contractor",
}

func ParseJobType(value string) (JobType, error) {
	jt := JobType(strings.ToLower(strings.TrimSpace(value)))
	_, ok := jobTypeLabels[jt]
	if !ok {
		return "", fmt.Errorf("unknown job type %q (expected fulltime, parttime or contractor)", value)
	}
	return jt, nil
}

// Label is the human readable form written into listings and reports.
func (jt JobType) Label() string {
	label, ok := jobTypeLabels[jt]
	if !ok {
		return string(jt)
	}
	return label
}

// Criteria is a single search query against a job board.
type Criteria struct {
	Keywords  string
	ZipCode   string
	Radius    int
	JobType   JobType
	SalaryMin string
	// Offset is the number of listings to skip, it is managed by the pagination driver.
	Offset int
}

// WithKeywords returns a copy of the criteria searching for different keywords.
func (c Criteria) WithKeywords(keywords string) Criteria {
	c.Keywords = keywords
	return c
}
