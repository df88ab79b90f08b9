package jobs

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func randomId(t testing.TB) string {
	id, err := random.String(12)
	require.NoError(t, err)
	return id
}

func TestParseJobType(t *testing.T) {
	testCases := []struct {
		in       string
		expected JobType
		label    string
	}{
		{in: "fulltime", expected: FULL_TIME, label: "Full Time"},
		{in: "PartTime", expected: PART_TIME, label: "Part Time"},
		{in: " contractor ", expected: CONTRACTOR, label: "Contractor"},
	}
	for _, test := range testCases {
		jt, err := ParseJobType(test.in)
		require.NoError(t, err)
		require.Equal(t, test.expected, jt)
		require.Equal(t, test.label, jt.Label())
	}

	_, err := ParseJobType("internship")
	require.Error(t, err)
}

func TestCollectionPutIdempotent(t *testing.T) {
	id := randomId(t)
	listing := Listing{Summary: Summary{JobId: ptr(id), Company: ptr("Acme")}}

	collection := NewCollection()
	require.True(t, collection.Put(listing))
	require.True(t, collection.Put(listing))
	require.Len(t, collection, 1)
	require.Equal(t, listing, collection[id])

	require.False(t, collection.Put(Listing{Summary: Summary{Company: ptr("No Id")}}))
	require.Len(t, collection, 1)
}

func TestCollectionSorted(t *testing.T) {
	collection := NewCollection()
	collection.Put(Listing{Summary: Summary{JobId: ptr("3"), Company: ptr("Zeta")}})
	collection.Put(Listing{Summary: Summary{JobId: ptr("2")}})
	collection.Put(Listing{Summary: Summary{JobId: ptr("5"), Company: ptr("Acme")}})
	collection.Put(Listing{Summary: Summary{JobId: ptr("1"), Company: ptr("Acme")}})

	var ids []string
	for _, listing := range collection.Sorted() {
		ids = append(ids, *listing.JobId)
	}
	require.Equal(t, []string{"1", "5", "3", "2"}, ids)
}

func TestSyncCollection(t *testing.T) {
	sc := NewSyncCollection(0)
	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func(i int) {
			sc.Put(Listing{Summary: Summary{JobId: ptr(string(rune('a' + i)))}})
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}

	snapshot := sc.Collection()
	require.Len(t, snapshot, 20)
	snapshot["extra"] = Listing{}
	require.Len(t, sc.Collection(), 20)
}

func TestMergeAll(t *testing.T) {
	shared := randomId(t)

	earlier := Listing{
		Summary: Summary{JobId: ptr(shared), Title: ptr("Data Analyst"), Company: ptr("Acme"), Summary: ptr("old summary")},
		Detail:  Detail{City: ptr("Trenton"), CollegeDegree: DEGREE_NOT_SPECIFIED},
		JobType: "Full Time",
	}
	later := Listing{
		Summary: Summary{JobId: ptr(shared), Title: ptr("Business Analyst"), Company: ptr("Acme Holdings"), Summary: ptr("new summary")},
		Detail:  Detail{City: ptr("Camden"), CollegeDegree: DEGREE_BACHELORS},
		JobType: "Part Time",
	}

	first := NewCollection()
	first.Put(earlier)
	first.Put(Listing{Summary: Summary{JobId: ptr("only-first"), Title: ptr("Analyst")}})

	second := NewCollection()
	second.Put(later)

	merged := MergeAll(Results{
		{Board: "indeed", Title: "data analyst", Collection: first},
		{Board: "monster", Title: "business analyst", Collection: second},
	})
	require.Len(t, merged, 2)

	expected := later
	expected.JobBoard = "monster"
	expected.JobSearch = "business analyst"
	expected.SearchMatch = SearchMatch("business analyst", later.Title)
	if diff := cmp.Diff(expected, merged[shared]); diff != "" {
		t.Fatal(diff)
	}
	require.InDelta(t, 1.0, merged[shared].SearchMatch, 0.0001)

	require.Equal(t, "data analyst", merged["only-first"].JobSearch)
	require.Equal(t, "indeed", merged["only-first"].JobBoard)

	// reversing the order reverses the winner
	reversed := MergeAll(Results{
		{Board: "monster", Title: "business analyst", Collection: second},
		{Board: "indeed", Title: "data analyst", Collection: first},
	})
	require.Equal(t, "Trenton", *reversed[shared].City)
	require.Equal(t, "old summary", *reversed[shared].Summary.Summary)
	require.Equal(t, "indeed", reversed[shared].JobBoard)
}

func TestSearchMatch(t *testing.T) {
	require.InDelta(t, 1.0, SearchMatch("Data Analyst ", ptr("data analyst")), 0.0001)
	score := SearchMatch("data analyst", ptr("business analyst"))
	require.Less(t, score, 1.0)
	require.Greater(t, score, 0.0)
}

func TestMergeAllEmpty(t *testing.T) {
	require.Empty(t, MergeAll(nil))
	require.Equal(t, 0, Results{{Board: "monster", Title: "x", Collection: NewCollection()}}.Total())
}

func TestSearchMatchNoTitle(t *testing.T) {
	require.Equal(t, 0.0, SearchMatch("data analyst", nil))
}

func TestSummaryJsonKeepsNulls(t *testing.T) {
	out, err := json.Marshal(Summary{JobId: ptr("abc")})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	expected := map[string]any{
		"company":     nil,
		"job_id":      "abc",
		"job_title":   nil,
		"job_summary": nil,
		"job_salary":  nil,
		"easy_apply":  false,
	}
	if diff := cmp.Diff(expected, decoded); diff != "" {
		t.Fatal(diff)
	}
}

func TestListingJsonKeys(t *testing.T) {
	out, err := json.Marshal(Listing{
		Summary:    Summary{JobId: ptr("abc")},
		Detail:     EmptyDetail(),
		DetailsUrl: ptr("https://www.indeed.com/cmp/Acme/jobs/Analyst-abc"),
		JobType:    FULL_TIME.Label(),
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	var keys []string
	for k := range decoded {
		keys = append(keys, k)
	}
	expected := []string{
		"city",
		"college_degree",
		"company",
		"easy_apply",
		"job_apply_url",
		"job_description",
		"job_details_url",
		"job_id",
		"job_posting_datetime",
		"job_posting_timeframe",
		"job_salary",
		"job_summary",
		"job_title",
		"job_type",
		"state",
		"zip_code",
	}
	require.ElementsMatch(t, expected, keys)
	require.Nil(t, decoded["job_posting_datetime"])
	require.Equal(t, "Not Specified", decoded["college_degree"])
}
