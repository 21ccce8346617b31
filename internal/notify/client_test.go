package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/alexivanou/weather-dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_Send(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		var prefs model.AlertPreferences
		require.NoError(t, json.NewDecoder(r.Body).Decode(&prefs))
		assert.True(t, prefs.Rain)
		assert.Equal(t, "me@example.com", prefs.Email)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(config.NotifyConfig{Endpoint: srv.URL, Timeout: time.Second}, zap.NewNop())
	err := client.Send(context.Background(), model.AlertPreferences{Rain: true, Email: "me@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_SendFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("mailer down"))
	}))
	defer srv.Close()

	client := NewClient(config.NotifyConfig{Endpoint: srv.URL, Timeout: time.Second}, zap.NewNop())
	err := client.Send(context.Background(), model.AlertPreferences{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "mailer down")
	// never retried
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_SendUnreachable(t *testing.T) {
	client := NewClient(config.NotifyConfig{Endpoint: "http://127.0.0.1:1", Timeout: time.Second}, zap.NewNop())
	err := client.Send(context.Background(), model.AlertPreferences{})
	assert.Error(t, err)
}
