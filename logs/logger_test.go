package logs

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdoutLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdoutLogger(&buf)

	logger.Log(logging.Entry{
		Severity: logging.Warning,
		Payload:  "upload failed",
		Labels:   map[string]string{"route": "/api/upload"},
	})
	logger.Log(logging.Entry{
		Severity: logging.Error,
		Payload:  errors.New("boom"),
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "Warning", first["severity"])
	assert.Equal(t, "upload failed", first["message"])
	assert.Equal(t, "/api/upload", first["route"])
	assert.NotEmpty(t, first["time"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "Error", second["severity"])
	assert.Equal(t, "boom", second["message"])
}

func TestStdoutLoggerFlush(t *testing.T) {
	assert.NoError(t, NewStdoutLogger(&bytes.Buffer{}).Flush())
}
