package model

import (
	"math"
	"time"
)

// TimestampLayout is the output timestamp format: local calendar time
// with microsecond precision.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// Record is one output row: the time value that triggered it plus the
// extracted column values in configured order.
type Record struct {
	Time   time.Time `json:"time"`
	Values []any     `json:"values"`
}

// FromSeconds converts a seconds-since-epoch reading into a record
// timestamp, keeping microsecond precision.
func FromSeconds(sec float64) time.Time {
	return time.UnixMicro(int64(math.Round(sec * 1e6)))
}

// Timestamp renders the record time for the Timestamp column.
func (r Record) Timestamp() string {
	return r.Time.Format(TimestampLayout)
}

// Summary mirrors the pass counters reported after a run.
type Summary struct {
	RunID         string `json:"run_id"`
	FramesScanned int    `json:"frames_scanned"`
	FramesMatched int    `json:"frames_matched"`
	Records       int    `json:"records"`
	BytesConsumed int64  `json:"bytes_consumed"`
}
