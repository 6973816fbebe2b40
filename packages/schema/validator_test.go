package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var objectSchema = []byte(`{
	"type": "object",
	"required": ["name", "id"],
	"properties": {
		"name": {"type": "string"},
		"id": {"type": "string"}
	}
}`)

func TestValidate(t *testing.T) {
	report, err := Validate([]byte(`{"name":"avatars","id":"b1"}`), objectSchema)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestValidate_Failure(t *testing.T) {
	report, err := Validate([]byte(`{"name":42}`), objectSchema)
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Errors)
}

func TestValidate_UnreadableDocument(t *testing.T) {
	_, err := Validate([]byte(`{broken`), objectSchema)
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object.schema.json")
	require.NoError(t, os.WriteFile(path, objectSchema, 0o644))

	report, err := ValidateFile([]byte(`{"name":"avatars","id":"b1"}`), path)
	require.NoError(t, err)
	assert.True(t, report.Valid)
}
