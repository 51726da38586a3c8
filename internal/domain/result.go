package domain

import "strconv"

// ItemID is the discriminated identifier of a search hit. Exactly one of the
// id fields is populated, according to Kind.
type ItemID struct {
	Kind       string
	VideoID    string
	ChannelID  string
	PlaylistID string
}

// Value returns whichever id is populated.
func (id ItemID) Value() string {
	switch {
	case id.VideoID != "":
		return id.VideoID
	case id.ChannelID != "":
		return id.ChannelID
	default:
		return id.PlaylistID
	}
}

type Thumbnails struct {
	Default string
	Medium  string
	High    string
}

type Snippet struct {
	PublishedAt          string
	ChannelID            string
	Title                string
	Description          string
	Thumbnails           Thumbnails
	ChannelTitle         string
	LiveBroadcastContent string
}

type ResultItem struct {
	ID      ItemID
	Snippet Snippet
}

// ResultPage is one server response. Held only inside the fetch loop.
type ResultPage struct {
	TotalResults  int64
	NextPageToken string
	Items         []ResultItem
}

// Stats are the per-video counters, coerced from the API's string values.
type Stats struct {
	ViewCount     uint64
	LikeCount     uint64
	FavoriteCount uint64
	CommentCount  uint64
}

// ParseStats coerces the raw statistics mapping to numeric counters.
// Missing or unparseable fields stay zero.
func ParseStats(raw map[string]string) *Stats {
	parse := func(key string) uint64 {
		n, _ := strconv.ParseUint(raw[key], 10, 64)
		return n
	}
	return &Stats{
		ViewCount:     parse("viewCount"),
		LikeCount:     parse("likeCount"),
		FavoriteCount: parse("favoriteCount"),
		CommentCount:  parse("commentCount"),
	}
}

// Row is one flattened result: the item's id plus its snippet fields promoted
// to top-level columns, and optionally the numeric stats.
type Row struct {
	ID                   string
	PublishedAt          string
	ChannelID            string
	Title                string
	Description          string
	ThumbnailDefault     string
	ThumbnailMedium      string
	ThumbnailHigh        string
	ChannelTitle         string
	LiveBroadcastContent string
	Stats                *Stats
}

// NewRow promotes an item's nested snippet fields into a flat row.
func NewRow(item ResultItem) Row {
	return Row{
		ID:                   item.ID.Value(),
		PublishedAt:          item.Snippet.PublishedAt,
		ChannelID:            item.Snippet.ChannelID,
		Title:                item.Snippet.Title,
		Description:          item.Snippet.Description,
		ThumbnailDefault:     item.Snippet.Thumbnails.Default,
		ThumbnailMedium:      item.Snippet.Thumbnails.Medium,
		ThumbnailHigh:        item.Snippet.Thumbnails.High,
		ChannelTitle:         item.Snippet.ChannelTitle,
		LiveBroadcastContent: item.Snippet.LiveBroadcastContent,
	}
}

var baseColumns = []string{
	"id",
	"publishedAt",
	"channelId",
	"title",
	"description",
	"thumbnails.default.url",
	"thumbnails.medium.url",
	"thumbnails.high.url",
	"channelTitle",
	"liveBroadcastContent",
}

var statsColumns = []string{
	"viewCount",
	"likeCount",
	"favoriteCount",
	"commentCount",
}

// ResultTable is the flattened output. Its zero value is the sentinel for
// "the platform reported no results".
type ResultTable struct {
	TotalResults int64
	WithStats    bool
	Rows         []Row
}

func (t *ResultTable) Empty() bool {
	return t.TotalResults == 0
}

// Columns is the fixed column set shared by every row.
func (t *ResultTable) Columns() []string {
	cols := make([]string, 0, len(baseColumns)+len(statsColumns))
	cols = append(cols, baseColumns...)
	if t.WithStats {
		cols = append(cols, statsColumns...)
	}
	return cols
}

// Record renders one row in the table's column order, for CSV output.
func (t *ResultTable) Record(r Row) []string {
	rec := []string{
		r.ID,
		r.PublishedAt,
		r.ChannelID,
		r.Title,
		r.Description,
		r.ThumbnailDefault,
		r.ThumbnailMedium,
		r.ThumbnailHigh,
		r.ChannelTitle,
		r.LiveBroadcastContent,
	}
	if t.WithStats {
		stats := r.Stats
		if stats == nil {
			stats = &Stats{}
		}
		rec = append(rec,
			strconv.FormatUint(stats.ViewCount, 10),
			strconv.FormatUint(stats.LikeCount, 10),
			strconv.FormatUint(stats.FavoriteCount, 10),
			strconv.FormatUint(stats.CommentCount, 10),
		)
	}
	return rec
}
