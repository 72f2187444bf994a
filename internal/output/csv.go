// Package output persists extracted records for downstream consumers.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"RogueMon/internal/model"
)

// WriteCSV writes the header row and one line per record to path. It
// is called even after a failed pass so partial results are kept.
func WriteCSV(path string, header []string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	werr := w.Write(header)
	row := make([]string, 0, len(header))
	for _, rec := range records {
		if werr != nil {
			break
		}
		row = row[:0]
		row = append(row, rec.Timestamp())
		for _, v := range rec.Values {
			row = append(row, formatValue(v))
		}
		werr = w.Write(row)
	}
	w.Flush()
	if werr == nil {
		werr = w.Error()
	}
	if werr != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, werr)
	}
	return f.Close()
}

// formatValue renders one cell: integers stay integral, floats keep
// their shortest exact form, everything else goes through fmt.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(v)
	}
}
