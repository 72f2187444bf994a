package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RogueMon/internal/model"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	header := []string{"Timestamp", "WordErrCnt", "FrameCnt"}
	ts := time.Date(2024, 3, 5, 14, 30, 1, 0, time.Local)
	records := []model.Record{
		{Time: ts, Values: []any{"N/A", 5}},
		{Time: ts.Add(time.Second), Values: []any{0, 9}},
	}

	require.NoError(t, WriteCSV(path, header, records))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Timestamp,WordErrCnt,FrameCnt", lines[0])
	assert.Equal(t, "2024-03-05 14:30:01.000000,N/A,5", lines[1])
	assert.Equal(t, "2024-03-05 14:30:02.000000,0,9", lines[2])
}

func TestWriteCSVEmptyRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(path, []string{"Timestamp", "A"}, nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,A\n", string(b))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"N/A", "N/A"},
		{5, "5"},
		{int64(7), "7"},
		{uint64(8), "8"},
		{1000.5, "1000.5"},
		{true, "true"},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.in))
	}
}
