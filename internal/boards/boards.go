package boards

import (
	"autorecruiter/internal/components/assert"
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/internal/jobs"
	"context"
	"fmt"
	"strings"
)

const (
	report_dispatcher_unimplemented = "dispatcher.unimplemented-board"
	report_dispatcher_unknown       = "dispatcher.unknown-board"
	report_searcher_empty           = "searcher.empty-result"
	report_searcher_collected       = "searcher.collected"
)

// Board identifies a job board.
type Board string

const (
	INDEED         Board = "indeed"
	MONSTER        Board = "monster"
	CAREER_BUILDER Board = "career_builder"
)

var allBoards = []Board{INDEED, MONSTER, CAREER_BUILDER}

func ParseBoard(value string) (Board, error) {
	b := Board(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range allBoards {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown job board %q (expected one of indeed, monster, career_builder)", value)
}

func ParseBoards(values []string) ([]Board, error) {
	out := make([]Board, 0, len(values))
	for _, v := range values {
		b, err := ParseBoard(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Source collects the listings of a single board.
type Source interface {
	Collect(ctx context.Context, criteria jobs.Criteria, target int) jobs.Collection
}

// unimplementedSource is a board that is known but cannot be scraped yet.
type unimplementedSource struct {
	board Board
	tel   telemetry.API
}

func (s unimplementedSource) Collect(context.Context, jobs.Criteria, int) jobs.Collection {
	s.tel.ReportWarning(report_dispatcher_unimplemented, string(s.board))
	return jobs.NewCollection()
}

// Dispatcher routes a board to its Source.
type Dispatcher struct {
	sources map[Board]Source
	tel     telemetry.API
}

// NewDispatcher creates a dispatcher where every board without a source in
// `sources` is unimplemented.
func NewDispatcher(tel telemetry.API, sources map[Board]Source) Dispatcher {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("boards", tel)

	resolved := make(map[Board]Source, len(allBoards))
	for _, board := range allBoards {
		source, ok := sources[board]
		if !ok || source == nil {
			source = unimplementedSource{board: board, tel: tel}
		}
		resolved[board] = source
	}
	return Dispatcher{sources: resolved, tel: tel}
}

// CollectForBoard never fails, unknown or unimplemented boards yield an empty collection.
func (d Dispatcher) CollectForBoard(ctx context.Context, board Board, criteria jobs.Criteria, target int) jobs.Collection {
	source, ok := d.sources[board]
	if !ok {
		d.tel.ReportWarning(report_dispatcher_unknown, string(board))
		return jobs.NewCollection()
	}
	return source.Collect(ctx, criteria, target)
}

// Searcher runs a search for every title on every board.
type Searcher struct {
	dispatcher Dispatcher
	tel        telemetry.API
}

func NewSearcher(dispatcher Dispatcher) Searcher {
	return Searcher{dispatcher: dispatcher, tel: dispatcher.tel}
}

// Run searches boards × titles in argument order, `criteria` supplies
// everything but the keywords, which come from each title.
func (s Searcher) Run(ctx context.Context, boards []Board, titles []string, criteria jobs.Criteria, target int) jobs.Results {
	var results jobs.Results
	for _, board := range boards {
		for _, title := range titles {
			if ctx.Err() != nil {
				return results
			}

			collection := s.dispatcher.CollectForBoard(ctx, board, criteria.WithKeywords(title), target)
			if len(collection) == 0 {
				s.tel.ReportWarning(report_searcher_empty, string(board), title)
			}
			s.tel.ReportCount(report_searcher_collected, int64(len(collection)))

			results = append(results, jobs.SearchResult{
				Board:      string(board),
				Title:      title,
				Collection: collection,
			})
		}
	}
	return results
}
