package boards

import (
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/internal/jobs"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type recordingSource struct {
	calls []jobs.Criteria
}

func (s *recordingSource) Collect(_ context.Context, criteria jobs.Criteria, target int) jobs.Collection {
	s.calls = append(s.calls, criteria)
	id := criteria.Keywords
	title := criteria.Keywords
	c := jobs.NewCollection()
	c.Put(jobs.Listing{Summary: jobs.Summary{JobId: &id, Title: &title}})
	return c
}

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard(" Indeed ")
	require.NoError(t, err)
	require.Equal(t, INDEED, b)

	parsed, err := ParseBoards([]string{"monster", "career_builder"})
	require.NoError(t, err)
	require.Equal(t, []Board{MONSTER, CAREER_BUILDER}, parsed)

	_, err = ParseBoards([]string{"indeed", "linkedin"})
	require.Error(t, err)
}

func TestDispatcherUnimplemented(t *testing.T) {
	rec := telemetry.NewRecorderAPI()
	source := &recordingSource{}
	d := NewDispatcher(rec, map[Board]Source{INDEED: source})

	for _, board := range []Board{MONSTER, CAREER_BUILDER} {
		collection := d.CollectForBoard(context.Background(), board, jobs.Criteria{}, 10)
		require.NotNil(t, collection)
		require.Empty(t, collection)
	}
	require.Len(t, rec.Reports(telemetry.REPORT_WARNING, report_dispatcher_unimplemented), 2)
	require.Empty(t, source.calls)

	require.Len(t, d.CollectForBoard(context.Background(), INDEED, jobs.Criteria{Keywords: "x"}, 10), 1)
	require.Empty(t, d.CollectForBoard(context.Background(), Board("dice"), jobs.Criteria{}, 10))
}

func TestSearcherRun(t *testing.T) {
	rec := telemetry.NewRecorderAPI()
	source := &recordingSource{}
	searcher := NewSearcher(NewDispatcher(rec, map[Board]Source{INDEED: source}))

	base := jobs.Criteria{ZipCode: "08096", Radius: 15, JobType: jobs.FULL_TIME, SalaryMin: "$40,000"}
	results := searcher.Run(
		context.Background(),
		[]Board{INDEED, MONSTER},
		[]string{"data analyst", "office admin"},
		base,
		25,
	)

	type entry struct {
		Board string
		Title string
		Size  int
	}
	var got []entry
	for _, r := range results {
		got = append(got, entry{Board: r.Board, Title: r.Title, Size: len(r.Collection)})
	}
	expected := []entry{
		{Board: "indeed", Title: "data analyst", Size: 1},
		{Board: "indeed", Title: "office admin", Size: 1},
		{Board: "monster", Title: "data analyst", Size: 0},
		{Board: "monster", Title: "office admin", Size: 0},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatal(diff)
	}

	require.Len(t, source.calls, 2)
	require.Equal(t, "data analyst", source.calls[0].Keywords)
	require.Equal(t, "08096", source.calls[0].ZipCode)
	require.Len(t, rec.Reports(telemetry.REPORT_WARNING, report_searcher_empty), 2)
}
