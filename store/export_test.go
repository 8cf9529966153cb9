package store

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, sampleList().Tasks))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"1", "Write report", "quarterly", "2025-03-04T17:00:00Z", "8", "", "false", "160.00"}, rows[1])
	assert.Equal(t, []string{"3", "Send report", "", "", "5", "1;999", "true", "50.50"}, rows[2])
}

func TestValidateJSONSchema(t *testing.T) {
	assert.NoError(t, ValidateJSONSchema([]byte(`{"tasks":[],"next_id":1}`)))

	err := ValidateJSONSchema([]byte(`{"tasks":[{"id":1,"title":"x","urgency":12,"created_at":"2025-03-01T09:00:00Z"}],"next_id":2}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tasks[0].urgency")

	assert.Error(t, ValidateJSONSchema([]byte(`{"tasks":[]}`)))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("b.yml"))
	assert.Equal(t, FormatTOML, FormatFromPath("b.toml"))
	assert.Equal(t, FormatSQLite, FormatFromPath("b.db"))
	assert.Equal(t, "", FormatFromPath("b.bak"))
}
