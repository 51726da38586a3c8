package domain

import "time"

// SearchRecord is one executed search, as persisted in the history store.
type SearchRecord struct {
	ID           int64
	Term         string
	ResultType   ResultType
	MaxResults   int
	TotalResults int64
	RowCount     int
	WithStats    bool
	ExecutedAt   time.Time
}
