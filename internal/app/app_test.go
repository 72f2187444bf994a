package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RogueMon/internal/model"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(filepath.Join(t.TempDir(), "records.db"), []string{"Timestamp", "WordErrCnt", "FrameCnt"})
	require.NoError(t, err)
	t.Cleanup(a.Stop)
	return a
}

func record(sec float64, values ...any) model.Record {
	return model.Record{Time: model.FromSeconds(sec), Values: values}
}

func TestLatestReturnsNewestRecord(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/latest")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	a.Publish(record(1000, "N/A", 5))
	a.Publish(record(1001, 0, 9))

	resp, err = http.Get(srv.URL + "/api/latest")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, float64(9), got["FrameCnt"])
	assert.Equal(t, model.Record{Time: model.FromSeconds(1001)}.Timestamp(), got["Timestamp"])
}

func TestRecordsLimitAndOrder(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Mux)
	defer srv.Close()

	for i := 0; i < 5; i++ {
		a.Publish(record(float64(1000+i), i, i))
	}

	resp, err := http.Get(srv.URL + "/api/records?limit=3")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 3)
	// Oldest of the returned window first.
	assert.Equal(t, float64(2), got[0]["FrameCnt"])
	assert.Equal(t, float64(4), got[2]["FrameCnt"])
}

func TestSummaryCounters(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Mux)
	defer srv.Close()

	a.Publish(record(2000, 0, 1))
	a.SetSummary(model.Summary{RunID: "run-1", FramesScanned: 10, Records: 1})

	resp, err := http.Get(srv.URL + "/api/summary")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got struct {
		Records int           `json:"records"`
		Last    string        `json:"last_timestamp"`
		Pass    model.Summary `json:"pass"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1, got.Records)
	assert.NotEmpty(t, got.Last)
	assert.Equal(t, "run-1", got.Pass.RunID)
	assert.Equal(t, 10, got.Pass.FramesScanned)
}

func TestPublishStoresRecord(t *testing.T) {
	a := newTestApp(t)
	a.Publish(record(3000, 1, 2))

	req := httptest.NewRequest(http.MethodGet, "/api/latest", nil)
	rr := httptest.NewRecorder()
	a.Mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, float64(2), got["FrameCnt"])
}
