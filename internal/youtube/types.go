package youtube

import "github.com/eydelrivero/tuber/internal/domain"

type pageInfo struct {
	TotalResults   int64 `json:"totalResults"`
	ResultsPerPage int64 `json:"resultsPerPage"`
}

type wireID struct {
	Kind       string `json:"kind"`
	VideoID    string `json:"videoId"`
	ChannelID  string `json:"channelId"`
	PlaylistID string `json:"playlistId"`
}

type wireThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type wireThumbnails struct {
	Default wireThumbnail `json:"default"`
	Medium  wireThumbnail `json:"medium"`
	High    wireThumbnail `json:"high"`
}

type wireSnippet struct {
	PublishedAt          string         `json:"publishedAt"`
	ChannelID            string         `json:"channelId"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Thumbnails           wireThumbnails `json:"thumbnails"`
	ChannelTitle         string         `json:"channelTitle"`
	LiveBroadcastContent string         `json:"liveBroadcastContent"`
}

type searchItem struct {
	ID      wireID      `json:"id"`
	Snippet wireSnippet `json:"snippet"`
}

type searchListResponse struct {
	NextPageToken string       `json:"nextPageToken"`
	PageInfo      pageInfo     `json:"pageInfo"`
	Items         []searchItem `json:"items"`
}

// statistics arrive as strings on the wire, coercion happens at flatten time
type videoItem struct {
	ID         string            `json:"id"`
	Statistics map[string]string `json:"statistics"`
}

type videoListResponse struct {
	Items []videoItem `json:"items"`
}

func toResultPage(resp *searchListResponse) *domain.ResultPage {
	items := make([]domain.ResultItem, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = domain.ResultItem{
			ID: domain.ItemID{
				Kind:       it.ID.Kind,
				VideoID:    it.ID.VideoID,
				ChannelID:  it.ID.ChannelID,
				PlaylistID: it.ID.PlaylistID,
			},
			Snippet: domain.Snippet{
				PublishedAt: it.Snippet.PublishedAt,
				ChannelID:   it.Snippet.ChannelID,
				Title:       it.Snippet.Title,
				Description: it.Snippet.Description,
				Thumbnails: domain.Thumbnails{
					Default: it.Snippet.Thumbnails.Default.URL,
					Medium:  it.Snippet.Thumbnails.Medium.URL,
					High:    it.Snippet.Thumbnails.High.URL,
				},
				ChannelTitle:         it.Snippet.ChannelTitle,
				LiveBroadcastContent: it.Snippet.LiveBroadcastContent,
			},
		}
	}

	return &domain.ResultPage{
		TotalResults:  resp.PageInfo.TotalResults,
		NextPageToken: resp.NextPageToken,
		Items:         items,
	}
}
