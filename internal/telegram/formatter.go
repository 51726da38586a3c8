package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/eydelrivero/tuber/internal/domain"
)

const maxListedRows = 20

func FormatResultTable(table *domain.ResultTable, resultType domain.ResultType) string {
	if table.Empty() {
		return "По вашему запросу ничего не найдено."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>Найдено: %d</b>\n\n", table.TotalResults))

	shown := table.Rows
	if len(shown) > maxListedRows {
		shown = shown[:maxListedRows]
	}

	for i, row := range shown {
		link := resultLink(resultType, row.ID)
		sb.WriteString(fmt.Sprintf("%d. <a href=\"%s\">%s</a>\n",
			i+1,
			html.EscapeString(link),
			html.EscapeString(row.Title),
		))
		if row.ChannelTitle != "" && resultType != domain.TypeChannel {
			sb.WriteString(fmt.Sprintf("   %s\n", html.EscapeString(row.ChannelTitle)))
		}
		if table.WithStats && row.Stats != nil {
			sb.WriteString(fmt.Sprintf("   просмотры: %d, лайки: %d, комментарии: %d\n",
				row.Stats.ViewCount,
				row.Stats.LikeCount,
				row.Stats.CommentCount,
			))
		}
		sb.WriteString("\n")
	}

	if len(table.Rows) > maxListedRows {
		sb.WriteString(fmt.Sprintf("… и еще %d", len(table.Rows)-maxListedRows))
	}

	return sb.String()
}

func resultLink(resultType domain.ResultType, id string) string {
	switch resultType {
	case domain.TypeChannel:
		return "https://www.youtube.com/channel/" + id
	case domain.TypePlaylist:
		return "https://www.youtube.com/playlist?list=" + id
	default:
		return "https://www.youtube.com/watch?v=" + id
	}
}

func FormatHistory(records []domain.SearchRecord) string {
	if len(records) == 0 {
		return "История поиска пуста."
	}

	var sb strings.Builder
	sb.WriteString("<b>Последние запросы:</b>\n\n")

	for i, rec := range records {
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n   результатов: %d, строк: %d, %s\n\n",
			i+1,
			html.EscapeString(rec.Term),
			rec.ResultType,
			rec.TotalResults,
			rec.RowCount,
			rec.ExecutedAt.Format("02.01.2006 15:04"),
		))
	}

	return sb.String()
}

func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var messages []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			messages = append(messages, text)
			break
		}

		splitPoint := findSafeSplitPoint(text, maxLen)
		if splitPoint <= 0 || splitPoint > len(text) {
			splitPoint = maxLen
		}

		messages = append(messages, text[:splitPoint])
		text = text[splitPoint:]
	}

	return messages
}

func findSafeSplitPoint(text string, maxLen int) int {
	// ищем пробел или перевод строки, не ломая HTML-теги
	for i := maxLen - 1; i > maxLen/2; i-- {
		if i >= len(text) {
			continue
		}
		if isInsideHTMLTag(text, i) {
			continue
		}

		if text[i] == '\n' || text[i] == ' ' {
			return i + 1
		}
	}

	// внутри тега - ищем конец
	if maxLen < len(text) && isInsideHTMLTag(text, maxLen) {
		for i := maxLen; i < len(text); i++ {
			if text[i] == '>' {
				for j := i + 1; j < len(text) && j < i+50; j++ {
					if text[j] == '\n' || text[j] == ' ' {
						return j + 1
					}
				}
				return i + 1
			}
		}
	}

	for i := maxLen - 1; i > 0; i-- {
		if text[i] == ' ' || text[i] == '\n' {
			return i + 1
		}
	}

	return maxLen
}

func isInsideHTMLTag(text string, pos int) bool {
	if pos >= len(text) || pos < 0 {
		return false
	}
	for i := pos; i >= 0; i-- {
		if text[i] == '>' {
			return false
		}
		if text[i] == '<' {
			return true
		}
	}
	return false
}
