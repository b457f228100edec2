package domain

import "time"

// IngestStats holds the counters of a single ingestion run.
type IngestStats struct {
	Pipeline         string
	Fetched          int
	SkippedExisting  int
	SkippedDuplicate int
	SkippedLive      int
	SkippedKeywords  int
	SkippedDuration  int
	Inserted         int
	InsertErrors     int
	Published        int
	PublishErrors    int
	TotalKnown       int
	IndexUpdated     bool
	Duration         time.Duration
}

type PointerOutcome string

const (
	PointerNotFound  PointerOutcome = "not_found"
	PointerUnchanged PointerOutcome = "unchanged"
	PointerUpdated   PointerOutcome = "updated"
)

// PointerResult describes what a pointer run did.
type PointerResult struct {
	Name     string
	Outcome  PointerOutcome
	Matches  int
	VideoID  string
	Live     bool
	Record   PointerRecord
	Duration time.Duration
}
