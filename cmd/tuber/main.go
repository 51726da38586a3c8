package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eydelrivero/tuber/internal/config"
	"github.com/eydelrivero/tuber/internal/domain"
	"github.com/eydelrivero/tuber/internal/service"
	"github.com/eydelrivero/tuber/internal/youtube"
)

func main() {
	var (
		maxResults  = flag.Int("n", 25, "maximum number of results to fetch")
		resultType  = flag.String("type", "video", "result type: video, channel or playlist")
		withStats   = flag.Bool("stats", false, "fetch per-video statistics")
		channelID   = flag.String("channel-id", "", "restrict the search to one channel")
		channelType = flag.String("channel-type", "", "restrict to a channel type")
		eventType   = flag.String("event-type", "", "restrict to a broadcast event type")
		location    = flag.String("location", "", "latitude,longitude of the search center")
		locationR   = flag.String("location-radius", "", "radius around the search center")
		publishedA  = flag.String("published-after", "", "only results published after this RFC 3339 time")
		publishedB  = flag.String("published-before", "", "only results published before this RFC 3339 time")
		caption     = flag.String("caption", "", "video caption filter")
		definition  = flag.String("definition", "", "video definition filter")
		license     = flag.String("license", "", "video license filter")
		syndicated  = flag.String("syndicated", "", "video syndicated filter")
		videoType   = flag.String("video-type", "", "video type filter")
		output      = flag.String("o", "", "write CSV to this file instead of stdout")
	)
	flag.Parse()

	if err := run(searchQuery(flag.Args(), cliFlags{
		maxResults:  *maxResults,
		resultType:  *resultType,
		withStats:   *withStats,
		channelID:   *channelID,
		channelType: *channelType,
		eventType:   *eventType,
		location:    *location,
		locationR:   *locationR,
		publishedA:  *publishedA,
		publishedB:  *publishedB,
		caption:     *caption,
		definition:  *definition,
		license:     *license,
		syndicated:  *syndicated,
		videoType:   *videoType,
	}), *output); err != nil {
		fmt.Fprintln(os.Stderr, "tuber:", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	maxResults  int
	resultType  string
	withStats   bool
	channelID   string
	channelType string
	eventType   string
	location    string
	locationR   string
	publishedA  string
	publishedB  string
	caption     string
	definition  string
	license     string
	syndicated  string
	videoType   string
}

func searchQuery(args []string, f cliFlags) domain.SearchQuery {
	query := domain.SearchQuery{
		Term:            strings.Join(args, " "),
		MaxResults:      f.maxResults,
		Type:            domain.ResultType(f.resultType),
		ChannelID:       f.channelID,
		ChannelType:     f.channelType,
		EventType:       f.eventType,
		Location:        f.location,
		LocationRadius:  f.locationR,
		PublishedAfter:  f.publishedA,
		PublishedBefore: f.publishedB,
		IncludeStats:    f.withStats,
	}

	if f.caption != "" || f.definition != "" || f.license != "" || f.syndicated != "" || f.videoType != "" {
		query.Video = &domain.VideoFilters{
			Caption:    f.caption,
			Definition: f.definition,
			License:    f.license,
			Syndicated: f.syndicated,
			Type:       f.videoType,
		}
	}

	return query
}

func run(query domain.SearchQuery, output string) error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := youtube.New(youtube.Config{
		APIKey:  cfg.YouTube.APIKey,
		BaseURL: cfg.YouTube.BaseURL,
		Timeout: cfg.YouTube.Timeout,
	}, logger, nil)

	if err := client.EnsureValid(); err != nil {
		return err
	}

	svc := service.NewSearchService(service.SearchServiceDeps{
		Pager:  client,
		Stats:  client,
		Logger: logger,
		Config: service.SearchConfig{CacheTTL: cfg.Cache.TTL},
	})

	table, err := svc.Search(ctx, query)
	if err != nil {
		return err
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeCSV(out, table); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	logger.Info("done",
		zap.Int64("total_results", table.TotalResults),
		zap.Int("rows", len(table.Rows)),
	)

	return nil
}

func writeCSV(out *os.File, table *domain.ResultTable) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write(table.Columns()); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := w.Write(table.Record(row)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
