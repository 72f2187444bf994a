package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromSecondsKeepsMicroseconds(t *testing.T) {
	got := FromSeconds(1000.123456)
	assert.Equal(t, time.UnixMicro(1_000_123_456), got)
}

func TestTimestampLayout(t *testing.T) {
	rec := Record{Time: time.Date(2024, 3, 5, 14, 30, 1, 250_000, time.Local)}
	assert.Equal(t, "2024-03-05 14:30:01.000250", rec.Timestamp())
}
