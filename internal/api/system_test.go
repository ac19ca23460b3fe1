package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	status, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, "ok", status)
}

func TestSystemStatus(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/system/status", r.URL.Path)
		w.Write(jsonResponse(map[string]any{
			"status":              "ok",
			"uptime_seconds":      86400,
			"article_count":       15000,
			"articles_today":      240,
			"high_priority_count": 12,
			"feeds_healthy":       9,
			"feeds_failing":       1,
			"storage_bytes":       1073741824,
		}))
	})

	status, err := client.SystemStatus()
	require.NoError(t, err)
	assert.Equal(t, 15000, status.ArticleCount)
	assert.Equal(t, 1, status.FeedsFailing)
	assert.Equal(t, int64(1073741824), status.StorageBytes)
}

func TestGetAndUpdateSettings(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write(jsonResponse(map[string]any{
				"retention_days": 90, "auto_purge": true, "high_priority_pin": false,
			}))
		case http.MethodPut:
			var body UpdateSettingsInput
			json.NewDecoder(r.Body).Decode(&body)
			require.NotNil(t, body.RetentionDays)
			w.Write(jsonResponse(map[string]any{
				"retention_days": *body.RetentionDays, "auto_purge": true, "high_priority_pin": false,
			}))
		}
	})

	settings, err := client.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, 90, settings.RetentionDays)

	days := 30
	updated, err := client.UpdateSettings(UpdateSettingsInput{RetentionDays: &days})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.RetentionDays)
}

func TestPurgeArticles(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/settings/purge", r.URL.Path)
		w.Write(jsonResponse(map[string]any{"removed": 314}))
	})

	result, err := client.PurgeArticles()
	require.NoError(t, err)
	assert.Equal(t, 314, result.Removed)
}

func TestLogin(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body LoginInput
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "analyst", body.Username)

		w.Write(jsonResponse(map[string]any{
			"token": "jti_abc123", "username": "analyst", "is_admin": false,
		}))
	})

	resp, err := client.Login("analyst", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "jti_abc123", resp.Token)
	assert.False(t, resp.IsAdmin)
}
