package app

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"

	"RogueMon/internal/model"
)

// Publish stores one record and broadcasts it to websocket clients.
func (a *App) Publish(rec model.Record) {
	body, err := json.Marshal(a.recordJSON(rec))
	if err != nil {
		log.Warn().Err(err).Msg("encode record")
		return
	}
	err = a.DB.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(recordsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(rec.Timestamp()), body)
	})
	if err != nil {
		log.Warn().Err(err).Msg("store record")
	}

	a.mu.Lock()
	a.published++
	a.last = rec.Timestamp()
	a.mu.Unlock()

	a.broadcast(body)
}

// SetSummary publishes final pass counters on /api/summary.
func (a *App) SetSummary(s model.Summary) {
	a.mu.Lock()
	a.summary = s
	a.mu.Unlock()
}

// recordJSON flattens a record into a column-keyed object.
func (a *App) recordJSON(rec model.Record) map[string]any {
	obj := make(map[string]any, len(a.header))
	if len(a.header) > 0 {
		obj[a.header[0]] = rec.Timestamp()
	}
	for i, v := range rec.Values {
		if i+1 < len(a.header) {
			obj[a.header[i+1]] = v
		}
	}
	return obj
}

// handleLatest returns the most recent stored record.
func (a *App) handleLatest(w http.ResponseWriter, r *http.Request) {
	err := a.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(recordsBucket)
		if b == nil {
			http.Error(w, "no records", http.StatusNotFound)
			return nil
		}
		_, v := b.Cursor().Last()
		if v == nil {
			http.Error(w, "no records", http.StatusNotFound)
			return nil
		}
		w.Header().Set("Content-Type", "application/json")
		if _, werr := w.Write(v); werr != nil {
			log.Warn().Err(werr).Msg("write latest record")
		}
		return nil
	})
	if err != nil {
		http.Error(w, "failed to read records", http.StatusInternalServerError)
	}
}

// handleRecords returns up to ?limit= most recent records, oldest
// first.
func (a *App) handleRecords(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	var out []json.RawMessage
	err := a.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(recordsBucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(out) < limit; k, v = c.Prev() {
			out = append(out, append(json.RawMessage{}, v...))
		}
		return nil
	})
	if err != nil {
		http.Error(w, "failed to read records", http.StatusInternalServerError)
		return
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Warn().Err(err).Msg("write records")
	}
}

// handleSummary serves the running publish counters plus, once the
// pass has finished, its final counters.
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	resp := struct {
		Records int           `json:"records"`
		Last    string        `json:"last_timestamp,omitempty"`
		Pass    model.Summary `json:"pass"`
	}{Records: a.published, Last: a.last, Pass: a.summary}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warn().Err(err).Msg("write summary")
	}
}
