package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ResultType string

const (
	TypeVideo    ResultType = "video"
	TypeChannel  ResultType = "channel"
	TypePlaylist ResultType = "playlist"
)

func (t ResultType) IsValid() bool {
	switch t {
	case TypeVideo, TypeChannel, TypePlaylist:
		return true
	}
	return false
}

// VideoFilters are the search filters the API only accepts for type=video.
type VideoFilters struct {
	Caption    string // any, closedCaption, none
	Definition string // any, high, standard
	License    string // any, creativeCommon, youtube
	Syndicated string // any, true
	Type       string // any, episode, movie
}

func (f *VideoFilters) isSet() bool {
	if f == nil {
		return false
	}
	return f.Caption != "" || f.Definition != "" || f.License != "" ||
		f.Syndicated != "" || f.Type != ""
}

var (
	videoLicenses   = map[string]bool{"any": true, "creativeCommon": true, "youtube": true}
	videoSyndicated = map[string]bool{"any": true, "true": true}
	videoTypes      = map[string]bool{"any": true, "episode": true, "movie": true}
)

// SearchQuery is the raw, user-supplied parameter set.
type SearchQuery struct {
	Term            string
	MaxResults      int
	Type            ResultType
	ChannelID       string
	ChannelType     string
	EventType       string
	Location        string
	LocationRadius  string
	PublishedAfter  string
	PublishedBefore string
	IncludeStats    bool
	Video           *VideoFilters
}

// Criteria is the validated, normalized form of a SearchQuery. Built once by
// Normalize and treated as read-only afterwards. Term is already percent-encoded.
type Criteria struct {
	Term            string
	MaxResults      int
	Type            ResultType
	ChannelID       string
	ChannelType     string
	EventType       string
	Location        string
	LocationRadius  string
	PublishedAfter  string
	PublishedBefore string
	IncludeStats    bool
	Video           *VideoFilters
}

// Normalize validates the query and produces the criteria the fetcher consumes.
// All checks run before any network call; the first failure wins.
func (q SearchQuery) Normalize() (*Criteria, error) {
	term := strings.TrimSpace(q.Term)
	if term == "" {
		return nil, ErrMissingTerm
	}
	if q.MaxResults < 0 {
		return nil, ErrNegativeMaxResults
	}

	typ := q.Type
	if typ == "" {
		typ = TypeVideo
	}
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: type %q", ErrInvalidFilter, string(q.Type))
	}

	if q.Video != nil {
		if v := q.Video.License; v != "" && !videoLicenses[v] {
			return nil, fmt.Errorf("%w: videoLicense %q", ErrInvalidFilter, v)
		}
		if v := q.Video.Syndicated; v != "" && !videoSyndicated[v] {
			return nil, fmt.Errorf("%w: videoSyndicated %q", ErrInvalidFilter, v)
		}
		if v := q.Video.Type; v != "" && !videoTypes[v] {
			return nil, fmt.Errorf("%w: videoType %q", ErrInvalidFilter, v)
		}
	}

	for _, bound := range []struct{ name, value string }{
		{"publishedAfter", q.PublishedAfter},
		{"publishedBefore", q.PublishedBefore},
	} {
		if bound.value == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, bound.value); err != nil {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidDate, bound.name, bound.value)
		}
	}

	video := q.Video
	if typ != TypeVideo {
		if video.isSet() {
			return nil, fmt.Errorf("%w: got type %q", ErrFilterConflict, string(typ))
		}
		// an empty substructure is not an explicit request, drop it
		video = nil
	}

	return &Criteria{
		Term:            encodeTerm(term),
		MaxResults:      q.MaxResults,
		Type:            typ,
		ChannelID:       q.ChannelID,
		ChannelType:     q.ChannelType,
		EventType:       q.EventType,
		Location:        q.Location,
		LocationRadius:  q.LocationRadius,
		PublishedAfter:  q.PublishedAfter,
		PublishedBefore: q.PublishedBefore,
		IncludeStats:    q.IncludeStats,
		Video:           video,
	}, nil
}

// encodeTerm replaces spaces with a literal %20. The term is embedded into a
// hand-built query string and must not pass through url.Values encoding again.
func encodeTerm(term string) string {
	return strings.ReplaceAll(term, " ", "%20")
}

// Params returns the outgoing query parameters in a stable order. Values are
// assumed already encoded; the transport joins them verbatim.
func (c *Criteria) Params(pageSize int, pageToken string) [][2]string {
	params := [][2]string{
		{"part", "snippet"},
		{"q", c.Term},
		{"type", string(c.Type)},
		{"maxResults", strconv.Itoa(pageSize)},
	}

	add := func(key, value string) {
		if value != "" {
			params = append(params, [2]string{key, value})
		}
	}

	add("channelId", c.ChannelID)
	add("channelType", c.ChannelType)
	add("eventType", c.EventType)
	add("location", c.Location)
	add("locationRadius", c.LocationRadius)
	add("publishedAfter", c.PublishedAfter)
	add("publishedBefore", c.PublishedBefore)

	if c.Video != nil {
		add("videoCaption", c.Video.Caption)
		add("videoDefinition", c.Video.Definition)
		add("videoLicense", c.Video.License)
		add("videoSyndicated", c.Video.Syndicated)
		add("videoType", c.Video.Type)
	}

	add("pageToken", pageToken)

	return params
}
