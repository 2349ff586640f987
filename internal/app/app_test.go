package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ssafy-wtd/wtd/internal/activity"
	"github.com/ssafy-wtd/wtd/internal/config"
	"github.com/ssafy-wtd/wtd/internal/session"
	"github.com/ssafy-wtd/wtd/internal/state"
)

func writeConfig(t *testing.T, apiURL, sessionDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	body := fmt.Sprintf(`
api_base_url = %q
user_id = 3
log_file = ""

[storage]
driver = "file"
dir = %q
session_id = "test-session"
`, apiURL, sessionDir)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_OnceSearchesAndPersists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var got activity.RecommendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/activities/recommend" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(activity.RecommendResponse{
			Recommendations: []activity.PlaceInfo{{PlaceName: "Riverside Park", Category: "park"}},
		})
	}))
	t.Cleanup(server.Close)

	sessionDir := t.TempDir()
	cfgPath := writeConfig(t, server.URL+"/api/v1/activities", sessionDir)

	var out bytes.Buffer
	err := Run(context.Background(), Options{ConfigPath: cfgPath, Once: true, Out: &out})
	require.NoError(t, err)

	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, 30, got.ChargingTime)
	assert.Contains(t, out.String(), "Riverside Park")

	storage, err := session.NewFile(sessionDir, "test-session")
	require.NoError(t, err)
	store, err := state.NewStore(context.Background(), storage)
	require.NoError(t, err)
	snap := store.Snapshot()
	assert.True(t, snap.HasSearched)
	require.Len(t, snap.Recommendations, 1)
	assert.Equal(t, "Riverside Park", snap.Recommendations[0].PlaceName)
}

func TestRun_OnceReturnsServerMessage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"recommendation engine busy"}`))
	}))
	t.Cleanup(server.Close)

	cfgPath := writeConfig(t, server.URL, t.TempDir())
	err := Run(context.Background(), Options{ConfigPath: cfgPath, Once: true})
	require.Error(t, err)
	assert.Equal(t, "recommendation engine busy", err.Error())
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url = ["), 0o600))

	err := Run(context.Background(), Options{ConfigPath: path, Once: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestBuild_FlagOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := writeConfig(t, "http://localhost:8080/api/v1/activities", t.TempDir())

	deps, err := build(context.Background(), Options{ConfigPath: cfgPath, LogLevel: "debug", SessionID: "other"})
	require.NoError(t, err)
	t.Cleanup(deps.close)

	assert.Equal(t, "debug", deps.cfg.LogLevel)
	assert.Equal(t, "other", deps.cfg.Storage.SessionID)
	assert.Equal(t, state.DefaultState(), deps.store.Snapshot())
}

type closeTracker struct {
	session.Storage
	closed int
}

func (c *closeTracker) Close() error {
	c.closed++
	return nil
}

func TestBuild_ClosesStorageWhenClientFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfgPath := writeConfig(t, "http://localhost:8080/api/v1/activities", t.TempDir())

	tracker := &closeTracker{Storage: session.NewMemory(time.Minute)}
	origOpen, origClient := openStorage, newClient
	t.Cleanup(func() { openStorage, newClient = origOpen, origClient })
	openStorage = func(session.Options) (session.Storage, error) { return tracker, nil }
	newClient = func(config.Config, *zap.Logger) (*activity.Client, error) {
		return nil, errors.New("bad base url")
	}

	_, err := build(context.Background(), Options{ConfigPath: cfgPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init activity client")
	assert.Equal(t, 1, tracker.closed)
}
