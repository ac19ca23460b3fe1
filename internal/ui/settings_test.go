package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labhacker007/joti-cli/internal/config"
)

func settingsBackend(t *testing.T) (SettingsModel, *[]string) {
	var calls []string
	_, client := testWatchlistClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			body, _ := io.ReadAll(r.Body)
			calls = append(calls, r.Method+" "+r.URL.Path+" "+strings.TrimSpace(string(body)))
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/settings":
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"retention_days": 30, "auto_purge": true, "high_priority_pin": false},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/api/settings":
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"retention_days": 60, "auto_purge": true, "high_priority_pin": true},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/settings/purge":
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"removed": 41},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/keywords":
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"id": "kw-1", "keyword": "lockbit", "category": "Ransomware", "is_active": true},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	cfg := &config.Config{Token: "jti_testtoken", Username: "analyst"}
	model := NewSettingsModel(client, cfg)
	cmd := model.Init()
	require.NotNil(t, cmd)
	model, _ = model.Update(cmd().(settingsLoadedMsg))
	return model, &calls
}

func TestSettingsLoad(t *testing.T) {
	model, _ := settingsBackend(t)

	require.NotNil(t, model.settings)
	assert.Equal(t, "30", model.retentionBuf)
	assert.True(t, model.autoPurge)
	assert.False(t, model.pin)
}

func TestSettingsSaveValidatesRetention(t *testing.T) {
	model, _ := settingsBackend(t)
	model.retentionBuf = ""

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Equal(t, "Retention must be a positive number of days", model.saveErr)
}

func TestSettingsSavePutsUpdatedFields(t *testing.T) {
	model, calls := settingsBackend(t)
	model.retentionBuf = "60"
	model.pin = true

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, model.saving)

	model, _ = model.Update(cmd())
	assert.False(t, model.saving)
	assert.Equal(t, 60, model.settings.RetentionDays)
	assert.True(t, model.settings.HighPriorityPin)

	require.Len(t, *calls, 1)
	assert.Contains(t, (*calls)[0], "PUT /api/settings")
	assert.Contains(t, (*calls)[0], `"retention_days":60`)
}

func TestSettingsPurgeConfirm(t *testing.T) {
	model, calls := settingsBackend(t)

	model, _ = model.Update(keyRunes("p"))
	require.True(t, model.confirmPurge)

	model, _ = model.Update(keyRunes("n"))
	assert.False(t, model.confirmPurge)
	assert.Empty(t, *calls)

	model, _ = model.Update(keyRunes("p"))
	model, cmd := model.Update(keyRunes("y"))
	require.NotNil(t, cmd)
	assert.True(t, model.purging)

	msg := cmd()
	done, ok := msg.(purgeDoneMsg)
	require.True(t, ok)
	assert.Equal(t, 41, done.removed)

	model, _ = model.Update(msg)
	assert.False(t, model.purging)
}

func TestSettingsExportWritesFile(t *testing.T) {
	model, _ := settingsBackend(t)
	t.Chdir(t.TempDir())

	model, _ = model.Update(keyRunes("e"))
	require.True(t, model.exporting)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok)
	assert.Equal(t, 1, done.count)

	data, err := os.ReadFile(done.path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "id,keyword,category,is_active,created_at")
	assert.Contains(t, content, "lockbit")

	model, _ = model.Update(msg)
	assert.False(t, model.exporting)
}

func TestSettingsRetentionAcceptsDigitsOnly(t *testing.T) {
	model, _ := settingsBackend(t)
	model.retentionBuf = ""

	model, _ = model.Update(keyRunes("4"))
	model, _ = model.Update(keyRunes("x"))
	model, _ = model.Update(keyRunes("5"))
	assert.Equal(t, "45", model.retentionBuf)
}

func TestSettingsToggleFields(t *testing.T) {
	model, _ := settingsBackend(t)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, model.autoPurge)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, model.pin)
}
