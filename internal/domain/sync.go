package domain

import "time"

// SyncKind identifies which remote call produced a batch of records.
type SyncKind string

const (
	SyncKindToday  SyncKind = "today"
	SyncKindRange  SyncKind = "range"
	SyncKindRandom SyncKind = "random"
)

// SyncStats holds statistics about a fetch-and-store pass.
type SyncStats struct {
	Kind      SyncKind
	Fetched   int
	Stored    int
	Published int
	Errors    int
	Duration  time.Duration
	// LastDate is the newest date stored by the pass.
	LastDate  string
}

type SyncState struct {
	Kind         SyncKind  `db:"kind" json:"kind"`
	LastSyncedAt time.Time `db:"last_synced_at" json:"last_synced_at"`
	LastDate     string    `db:"last_date" json:"last_date"`
	TotalSynced  int64     `db:"total_synced" json:"total_synced"`
}
