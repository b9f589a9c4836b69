package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflog/reeflog/internal/backend"
)

func TestParameterAdapterSubmit(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/parameters", r.URL.Path)
		var in backend.ParameterSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "tank-1", in.TankID)
		assert.Equal(t, 420.0, in.Values["calcium"])
		io.WriteString(w, `[{"id":"pr-1","tank_id":"tank-1","parameter_type":"calcium","value":420}]`)
	}))
	defer server.Close()

	adapter := NewParameterAdapter(NewClient(server.URL, time.Second, newTestTokens(t, "tok"), nil))

	readings, err := adapter.Submit(ctx, "", backend.ParameterSubmission{
		TankID: "tank-1",
		Values: map[string]float64{"calcium": 420},
	})
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "calcium", readings[0].ParameterType)
}

func TestParameterAdapterDeleteReading(t *testing.T) {
	ctx := context.Background()

	measuredAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/v1/parameters", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "tank-1", q.Get("tank_id"))
		assert.Equal(t, "calcium", q.Get("parameter_type"))
		assert.Equal(t, measuredAt.Format(time.RFC3339), q.Get("measured_at"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	adapter := NewParameterAdapter(NewClient(server.URL, time.Second, newTestTokens(t, "tok"), nil))
	require.NoError(t, adapter.DeleteReading(ctx, "", "tank-1", "calcium", measuredAt))
}

func TestFeedingAdapterFeed(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/feeding/schedules/fs-1/feed", r.URL.Path)
		io.WriteString(w, `{"id":"fl-1","schedule_id":"fs-1","food_name":"Reef Frenzy"}`)
	}))
	defer server.Close()

	adapter := NewFeedingAdapter(NewClient(server.URL, time.Second, newTestTokens(t, "tok"), nil))

	log, err := adapter.Feed(ctx, "", "fs-1")
	require.NoError(t, err)
	assert.Equal(t, "Reef Frenzy", log.FoodName)
	require.NotNil(t, log.ScheduleID)
	assert.Equal(t, "fs-1", *log.ScheduleID)
}
