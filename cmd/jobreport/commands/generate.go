package commands

import (
	"autorecruiter/internal/boards"
	"autorecruiter/internal/components/chrono"
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/internal/jobs"
	"autorecruiter/internal/report"
	"autorecruiter/internal/scrapers/indeed"
	"autorecruiter/internal/wordcloud"
	"autorecruiter/pkg/serviceutil"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	Boards     []string
	Titles     []string
	Filename   string
	OutputDir  string
	MinJobs    int
	ZipCode    string
	Radius     int
	JobType    string
	SalaryMin  string
	WordClouds bool
}

func (o *generateOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&o.Boards, "job-boards", nil, "Job boards to search (indeed, monster, career_builder), repeatable.")
	flags.StringSliceVar(&o.Titles, "job-titles", nil, "Job titles to search for, repeatable.")
	flags.StringVar(&o.Filename, "report-output-filename", "jobs", "Base of the report filename, the date is appended.")
	flags.StringVar(&o.OutputDir, "report-output-dir", ".", "Directory reports are written to.")
	flags.IntVar(&o.MinJobs, "min-jobs", 200, "Number of unique listings to collect per search (fewer may be found).")
	flags.StringVar(&o.ZipCode, "zip-code", "08096", "Zip code the search is centered on.")
	flags.IntVar(&o.Radius, "radius", 15, "Search radius around the zip code.")
	flags.StringVar(&o.JobType, "job-type", string(jobs.FULL_TIME), "Job type (fulltime, parttime, contractor).")
	flags.StringVar(&o.SalaryMin, "salary-min", "$40,000", "Minimum salary passed through to the job board.")
	flags.BoolVar(&o.WordClouds, "word-clouds", false, "Also render a word cloud of the job descriptions of every search.")
}

func (o generateOptions) criteria() (jobs.Criteria, error) {
	jobType, err := jobs.ParseJobType(o.JobType)
	if err != nil {
		return jobs.Criteria{}, err
	}
	return jobs.Criteria{
		ZipCode:   o.ZipCode,
		Radius:    o.Radius,
		JobType:   jobType,
		SalaryMin: o.SalaryMin,
	}, nil
}

var generateOpts generateOptions

func init() {
	generateOpts.bind(generateCmd)
	generateCmd.MarkFlagRequired("job-boards")
	generateCmd.MarkFlagRequired("job-titles")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate --job-boards <board> --job-titles <title> [flags]",
	Short: "Searches the job boards and writes an xlsx report.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		path, err := runGenerate(cmd.Context(), cfg, generateOpts, os.Stdout)
		if err != nil {
			serviceutil.Fatal("failed to generate job report", err)
		}
		slog.Info("job report written", "path", path)
	},
}

func newSearcher(cfg Config, tel telemetry.API) (boards.Searcher, error) {
	client, err := indeed.NewClient(
		indeed.WithCustomTelemetryAPI(tel),
		indeed.WithDetailConcurrency(cfg.Indeed.DetailConcurrency),
		indeed.WithDetailCacheTTL(time.Duration(cfg.Indeed.DetailCacheMins)*time.Minute),
		indeed.WithHttpFetcherOptions(indeed.HttpFetcherOptions{
			RequestsPerSecond: cfg.Indeed.RequestsPerSecond,
			Timeout:           time.Duration(cfg.Indeed.TimeoutSeconds) * time.Second,
			DumpDir:           cfg.Indeed.HttpDumpDir,
		}),
	)
	if err != nil {
		return boards.Searcher{}, err
	}
	dispatcher := boards.NewDispatcher(tel, map[boards.Board]boards.Source{
		boards.INDEED: client,
	})
	return boards.NewSearcher(dispatcher), nil
}

// runGenerate collects the listings for every board and title, writes the
// report (and optionally word clouds) and returns the report's path.
func runGenerate(ctx context.Context, cfg Config, opts generateOptions, out io.Writer) (string, error) {
	tel := telemetry.SlogAPI{}
	clock := chrono.NewStandardTime()

	boardList, err := boards.ParseBoards(opts.Boards)
	if err != nil {
		return "", err
	}
	if len(boardList) == 0 || len(opts.Titles) == 0 {
		return "", fmt.Errorf("at least one job board and one job title are required")
	}
	criteria, err := opts.criteria()
	if err != nil {
		return "", err
	}

	searcher, err := newSearcher(cfg, tel)
	if err != nil {
		return "", err
	}

	start := clock.Now()
	results := searcher.Run(ctx, boardList, opts.Titles, criteria, opts.MinJobs)
	global := jobs.MergeAll(results)
	slog.Info("search finished", "listings", len(global), "seconds", clock.Now().Sub(start).Seconds())

	report.PrintSummary(out, results, global)

	path, err := report.NewWriter(tel, clock).Write(opts.OutputDir, opts.Filename, results, global)
	if err != nil {
		return "", err
	}

	if opts.WordClouds {
		writeWordClouds(cfg, opts, results, tel)
	}
	return path, nil
}

func writeWordClouds(cfg Config, opts generateOptions, results jobs.Results, tel telemetry.API) {
	for _, result := range results {
		text := wordcloud.DescriptionText(result.Collection)
		if text == "" {
			continue
		}
		name := strings.ReplaceAll(
			strings.ToLower(fmt.Sprintf("%s_wordcloud_%s_%s.png", opts.Filename, result.Board, result.Title)),
			" ", "_",
		)
		path := filepath.Join(opts.OutputDir, name)
		err := wordcloud.WriteFile(path, text, cfg.WordCloud)
		if err != nil {
			tel.ReportWarning("generate.word-cloud", err, path)
			continue
		}
		slog.Info("word cloud written", "path", path)
	}
}
