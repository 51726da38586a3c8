package search

import (
	"context"
	"fmt"

	"github.com/eydelrivero/tuber/internal/domain"
)

// Flatten converts the accumulated items into a table with the fixed column
// set. When stats is non-nil each row is enriched with the video's numeric
// counters, looked up one by one in order; a lookup failure abandons the
// whole table. A zero reported total short-circuits to the empty sentinel.
func Flatten(ctx context.Context, total int64, items []domain.ResultItem, stats StatsProvider) (*domain.ResultTable, error) {
	table := &domain.ResultTable{TotalResults: total}
	if total == 0 {
		return table, nil
	}

	table.WithStats = stats != nil
	table.Rows = make([]domain.Row, 0, len(items))

	for _, item := range items {
		row := domain.NewRow(item)

		if stats != nil {
			raw, err := stats.VideoStats(ctx, item.ID.VideoID)
			if err != nil {
				return nil, fmt.Errorf("stats for %s: %w", item.ID.VideoID, err)
			}
			row.Stats = domain.ParseStats(raw)
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
