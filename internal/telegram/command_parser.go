package telegram

import (
	"strings"

	"github.com/eydelrivero/tuber/internal/domain"
)

// /find, /channels, /playlists, /stats -> соответствующий тип поиска
// обычный текст -> поиск видео
func ParseSearchCommand(text string, maxResults int) domain.SearchQuery {
	text = strings.TrimSpace(text)

	query := domain.SearchQuery{
		Term:       text,
		MaxResults: maxResults,
		Type:       domain.TypeVideo,
	}

	if text == "" || !strings.HasPrefix(text, "/") {
		return query
	}

	parts := strings.SplitN(text, " ", 2)
	command := strings.ToLower(parts[0])

	var rest string
	if len(parts) > 1 {
		rest = normalizeSpaces(parts[1])
	}

	switch command {
	case "/find":
		query.Term = rest
	case "/channels":
		query.Term = rest
		query.Type = domain.TypeChannel
	case "/playlists":
		query.Term = rest
		query.Type = domain.TypePlaylist
	case "/stats":
		query.Term = rest
		query.IncludeStats = true
	}

	return query
}

func normalizeSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
