package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_NoNetworkOrCI(t *testing.T) {
	t.Setenv("CI", "1")
	latest, newer, err := Check(context.Background(), "1.0.0", false)
	require.NoError(t, err)
	assert.Empty(t, latest)
	assert.False(t, newer)
}

func TestNormalizeAndNewer(t *testing.T) {
	assert.Equal(t, "1.2.3", normalize(" v1.2.3 "))
	assert.False(t, Newer("1.2.3", "1.2.3"))
	assert.True(t, Newer("1.3.0", "1.2.9"))
	assert.False(t, Newer("1.2.0", "1.2.1"))
	assert.True(t, Newer("v1.10", "1.9.0"))
	assert.False(t, Newer("garbage", "1.0.0"))
}

func TestCheck_UsesCacheWhenFresh(t *testing.T) {
	t.Setenv("CI", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	c := cache{LastChecked: time.Now(), Latest: "1.2.3"}
	path := filepath.Join(dir, "shotredact", cacheFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	b, _ := json.Marshal(c)
	require.NoError(t, os.WriteFile(path, b, 0644))

	latest, newer, err := Check(context.Background(), "1.2.2", false)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", latest)
	assert.True(t, newer)
}

func TestCheck_FetchesWhenStale(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shotredact-updater", r.Header.Get("User-Agent"))
		_ = json.NewEncoder(w).Encode(map[string]string{"tag_name": "v9.9.9"})
	}))
	defer srv.Close()
	old := latestURL
	latestURL = srv.URL
	defer func() { latestURL = old }()

	latest, newer, err := Check(context.Background(), "0.1.0", false)
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", latest)
	assert.True(t, newer)

	c, err := loadCache()
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", c.Latest)
}

func TestLatestVersionOnline_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	old := latestURL
	latestURL = srv.URL
	defer func() { latestURL = old }()

	_, err := latestVersionOnline(context.Background())
	assert.Error(t, err)
}
