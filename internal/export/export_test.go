package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labhacker007/joti-cli/internal/api"
)

func sampleKeywords() []api.Keyword {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []api.Keyword{
		{ID: "kw-1", Keyword: "APT29", Category: "APT Group", IsActive: true, CreatedAt: &created},
		{ID: "kw-2", Keyword: "lock,bit", IsActive: false},
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "joti-keywords-2026-03-01.csv", Filename(FormatCSV, now))
	assert.Equal(t, "joti-keywords-2026-03-01.json", Filename(FormatJSON, now))
}

func TestWriteKeywordsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKeywords(&buf, FormatCSV, sampleKeywords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "keyword", "category", "is_active", "created_at"}, rows[0])
	assert.Equal(t, []string{"kw-1", "APT29", "APT Group", "true", "2026-03-01T12:00:00Z"}, rows[1])
	// Commas in keywords survive the round trip, empty category stays empty.
	assert.Equal(t, []string{"kw-2", "lock,bit", "", "false", ""}, rows[2])
}

func TestWriteKeywordsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKeywords(&buf, FormatJSON, sampleKeywords()))

	var decoded []api.Keyword
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "APT29", decoded[0].Keyword)
	assert.False(t, decoded[1].IsActive)
}

func TestWriteKeywordsJSONEmptyListIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKeywords(&buf, FormatJSON, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}
